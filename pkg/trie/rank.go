package trie

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// rank keeps the candidates that have a child in children and orders them
// by descending child frequency, then ascending symbol.
func rank[S constraints.Ordered](candidates []S, children map[S]*Node[S]) []S {
	out := make([]S, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := children[c]; !ok || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b S) int {
		fa, fb := children[a].frequency, children[b].frequency
		switch {
		case fa > fb:
			return -1
		case fa < fb:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	return out
}
