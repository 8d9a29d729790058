/*
Package trie implements a generic prefix tree with ambiguous key lookup.

Every input symbol is expanded by a Mapper into the symbols to try against
the children of the current node. The Identity mapper gives plain dictionary
lookup, the Keypad mapper turns phone keypad digits into their letters so
that "4663" finds "good", "home", "gone" and "hood".

Nodes carry an additive frequency counter filled in by InsertWeighted.
Search and SearchLayered rank the children of every node by that counter,
so the most used paths come first.

	root := trie.NewRoot[rune]()
	root, _ = trie.InsertWeighted(root, []rune("home"), 3)
	root, _ = trie.InsertWeighted(root, []rune("good"), 2)
	res := trie.Search(root, trie.DefaultKeypad(), []rune("4663"))

# Concurrency

Searches never mutate a trie and may share it freely. Inserts must not run
concurrently with anything else on the same trie.
*/
package trie

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Node is one level of the trie. A node owns its children; nothing outside
// the tree holds on to them.
type Node[S constraints.Ordered] struct {
	frequency int
	end       bool
	children  map[S]*Node[S]
}

// NewRoot returns an empty root node.
func NewRoot[S constraints.Ordered]() *Node[S] {
	return &Node[S]{children: make(map[S]*Node[S])}
}

// Frequency returns the summed weight of every weighted insertion that
// passed through or ended at n.
func (n *Node[S]) Frequency() int {
	if n == nil {
		return 0
	}
	return n.frequency
}

// IsKey reports whether an inserted key ends at n.
func (n *Node[S]) IsKey() bool {
	return n != nil && n.end
}

// Child returns the child for sym, or nil.
func (n *Node[S]) Child(sym S) *Node[S] {
	if n == nil {
		return nil
	}
	return n.children[sym]
}

// Symbols returns the symbols of n's children in ascending order.
func (n *Node[S]) Symbols() []S {
	if n == nil {
		return nil
	}
	syms := maps.Keys(n.children)
	slices.Sort(syms)
	return syms
}

// Walk follows key from n and returns the node it ends at, or nil.
func (n *Node[S]) Walk(key []S) *Node[S] {
	cur := n
	for _, sym := range key {
		if cur = cur.Child(sym); cur == nil {
			return nil
		}
	}
	return cur
}

func (n *Node[S]) leaf() bool {
	return n == nil || len(n.children) == 0
}

// child returns the child for sym, creating it when absent.
func (n *Node[S]) child(sym S) *Node[S] {
	c, ok := n.children[sym]
	if !ok {
		c = NewRoot[S]()
		n.children[sym] = c
	}
	return c
}
