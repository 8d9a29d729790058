package trie

import "golang.org/x/exp/constraints"

// Search returns the keys of exactly len(input) symbols that the input can
// spell through m, highest frequency path first at every level. It does not
// complete beyond the input; see SearchAll for that. All searches treat a
// nil m as Identity.
func Search[S constraints.Ordered](root *Node[S], m Mapper[S], input []S) [][]S {
	m = orIdentity(m)
	if root.leaf() || len(input) == 0 {
		return nil
	}
	var res [][]S
	rest := input[1:]
	for _, sym := range rank(m.Candidates(input[0]), root.children) {
		c := root.children[sym]
		sub := Search(c, m, rest)
		if len(sub) == 0 && (len(rest) > 0 || !c.end) {
			continue
		}
		// On the last symbol sub is empty and prependAll seeds [sym].
		res = concat(res, prependAll(sym, sub))
	}
	return res
}

// SearchAll returns every stored key starting with a sequence the prefix
// can spell through m. With an empty prefix it returns every key below
// root. The output is unbounded, so callers facing large tries should cap
// what they keep.
func SearchAll[S constraints.Ordered](root *Node[S], m Mapper[S], prefix []S) [][]S {
	m = orIdentity(m)
	if root.leaf() {
		return nil
	}
	var res [][]S
	if len(prefix) == 0 {
		for _, sym := range root.Symbols() {
			res = concat(res, prependAll(sym, completions(root.children[sym])))
		}
		return res
	}
	rest := prefix[1:]
	seen := make(map[S]bool)
	for _, sym := range m.Candidates(prefix[0]) {
		c, ok := root.children[sym]
		if !ok || seen[sym] {
			continue
		}
		seen[sym] = true
		var sub [][]S
		if len(rest) == 0 {
			sub = completions(c)
		} else if sub = SearchAll(c, m, rest); len(sub) == 0 {
			continue
		}
		res = concat(res, prependAll(sym, sub))
	}
	return res
}

// completions lists the keys ending at or below n, relative to n. The key
// ending at n itself comes first as the empty sequence.
func completions[S constraints.Ordered](n *Node[S]) [][]S {
	var res [][]S
	if n.end {
		res = append(res, []S{})
	}
	for _, sym := range n.Symbols() {
		res = concat(res, prependAll(sym, completions(n.children[sym])))
	}
	return res
}

type candidate[S constraints.Ordered] struct {
	key  []S
	node *Node[S]
}

// SearchLayered gives the same keys as Search, computed one input symbol
// at a time over a frontier of partial keys instead of by recursion.
// Parents keep their order from layer to layer, so the ranking matches.
func SearchLayered[S constraints.Ordered](root *Node[S], m Mapper[S], input []S) [][]S {
	m = orIdentity(m)
	if root.leaf() || len(input) == 0 {
		return nil
	}
	frontier := []candidate[S]{{node: root}}
	last := len(input) - 1
	for i, in := range input {
		var next []candidate[S]
		syms := m.Candidates(in)
		for _, cand := range frontier {
			for _, sym := range rank(syms, cand.node.children) {
				c := cand.node.children[sym]
				if i == last && !c.end {
					continue
				}
				key := make([]S, len(cand.key), len(cand.key)+1)
				copy(key, cand.key)
				next = append(next, candidate[S]{key: append(key, sym), node: c})
			}
		}
		frontier = next
		if len(frontier) == 0 {
			return nil
		}
	}
	res := make([][]S, len(frontier))
	for i, cand := range frontier {
		res[i] = cand.key
	}
	return res
}
