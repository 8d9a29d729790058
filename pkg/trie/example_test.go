package trie_test

import (
	"fmt"

	"github.com/bastiangx/keyserve/pkg/trie"
)

func Example() {
	root := trie.NewRoot[rune]()
	root, _ = trie.InsertWeighted(root, []rune("home"), 3)
	root, _ = trie.InsertWeighted(root, []rune("good"), 2)
	root, _ = trie.InsertWeighted(root, []rune("gone"), 1)
	root, _ = trie.InsertWeighted(root, []rune("hood"), 1)

	for _, key := range trie.Search(root, trie.DefaultKeypad(), []rune("4663")) {
		fmt.Println(string(key))
	}
	// Output:
	// home
	// hood
	// good
	// gone
}

func ExampleSearchAll() {
	var root *trie.Node[rune]
	for _, w := range []string{"a", "b", "good", "home", "gone"} {
		root = trie.Insert(root, []rune(w))
	}
	for _, key := range trie.SearchAll(root, trie.Identity[rune]{}, []rune("go")) {
		fmt.Println(string(key))
	}
	// Output:
	// gone
	// good
}

func ExampleRender() {
	var root *trie.Node[rune]
	root = trie.Insert(root, []rune("a"))
	root = trie.Insert(root, []rune("bo"))
	fmt.Println(trie.Render(root))
	// Output: (, (a), (b, (bo)))
}
