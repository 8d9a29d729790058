package trie

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// DefaultWeight is the weight callers use for a plain occurrence of a key.
const DefaultWeight = 1

// ErrInvalidWeight is returned by InsertWeighted for weights below one.
var ErrInvalidWeight = errors.New("trie: weight must be positive")

// ErrFrequencyOverflow is returned by InsertWeighted when adding the weight
// would push a frequency on the key's path past math.MaxInt.
var ErrFrequencyOverflow = errors.New("trie: frequency overflow")

// Insert adds key to the tree rooted at root without touching frequencies.
// A nil root is created. The returned root must replace the caller's.
func Insert[S constraints.Ordered](root *Node[S], key []S) *Node[S] {
	if root == nil {
		root = NewRoot[S]()
	}
	insert(root, key)
	return root
}

func insert[S constraints.Ordered](n *Node[S], key []S) {
	if len(key) == 0 {
		return
	}
	c := n.child(key[0])
	if len(key) == 1 {
		c.end = true
		return
	}
	insert(c, key[1:])
}

// InsertWeighted adds key and adds weight to the frequency of every node on
// its path. The counter is per node, not per key: three keys of weight one
// sharing a prefix outrank a single key of weight two there. Nothing is
// changed when the weight is rejected.
func InsertWeighted[S constraints.Ordered](root *Node[S], key []S, weight int) (*Node[S], error) {
	if weight < 1 {
		return root, ErrInvalidWeight
	}
	n := root
	for _, sym := range key {
		if n = n.Child(sym); n == nil {
			break
		}
		if n.frequency > math.MaxInt-weight {
			return root, ErrFrequencyOverflow
		}
	}
	if root == nil {
		root = NewRoot[S]()
	}
	p := root
	for _, sym := range key {
		p = p.child(sym)
		p.frequency += weight
	}
	if p != root {
		p.end = true
	}
	return root, nil
}
