package trie

import "golang.org/x/exp/constraints"

// Trie binds a root node to the Mapper chosen for it, so callers do not
// have to pass the mapper on every search. The zero value is not usable;
// build one with New.
type Trie[S constraints.Ordered] struct {
	root   *Node[S]
	mapper Mapper[S]
	keys   int
}

// New returns an empty trie that expands input through m. A nil m means
// Identity.
func New[S constraints.Ordered](m Mapper[S]) *Trie[S] {
	return &Trie[S]{root: NewRoot[S](), mapper: orIdentity(m)}
}

// Root exposes the root node for the package level operations.
func (t *Trie[S]) Root() *Node[S] { return t.root }

// Mapper returns the mapper the trie was built with.
func (t *Trie[S]) Mapper() Mapper[S] { return t.mapper }

// Len returns the number of distinct keys stored.
func (t *Trie[S]) Len() int { return t.keys }

// Insert stores key without weighting it.
func (t *Trie[S]) Insert(key []S) {
	isNew := len(key) > 0 && !t.root.Walk(key).IsKey()
	t.root = Insert(t.root, key)
	if isNew {
		t.keys++
	}
}

// InsertWeighted stores key and adds weight along its path.
func (t *Trie[S]) InsertWeighted(key []S, weight int) error {
	isNew := len(key) > 0 && !t.root.Walk(key).IsKey()
	root, err := InsertWeighted(t.root, key, weight)
	if err != nil {
		return err
	}
	t.root = root
	if isNew {
		t.keys++
	}
	return nil
}

// Contains reports whether key was inserted verbatim.
func (t *Trie[S]) Contains(key []S) bool {
	return len(key) > 0 && t.root.Walk(key).IsKey()
}

// Frequency returns the frequency stored on the node key ends at.
func (t *Trie[S]) Frequency(key []S) int {
	return t.root.Walk(key).Frequency()
}

// Search runs Search with the trie's mapper.
func (t *Trie[S]) Search(input []S) [][]S {
	return Search(t.root, t.mapper, input)
}

// SearchAll runs SearchAll with the trie's mapper.
func (t *Trie[S]) SearchAll(prefix []S) [][]S {
	return SearchAll(t.root, t.mapper, prefix)
}

// SearchLayered runs SearchLayered with the trie's mapper.
func (t *Trie[S]) SearchLayered(input []S) [][]S {
	return SearchLayered(t.root, t.mapper, input)
}

func (t *Trie[S]) String() string {
	return Render(t.root)
}
