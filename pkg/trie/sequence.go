package trie

// prependAll returns a new set holding sym followed by each sequence of
// set. An empty set gives the single sequence [sym].
func prependAll[S any](sym S, set [][]S) [][]S {
	if len(set) == 0 {
		return [][]S{{sym}}
	}
	out := make([][]S, len(set))
	for i, seq := range set {
		s := make([]S, 0, len(seq)+1)
		s = append(s, sym)
		out[i] = append(s, seq...)
	}
	return out
}

// concat appends b to a, keeping a's elements first.
func concat[S any](a, b [][]S) [][]S {
	if len(b) == 0 {
		return a
	}
	return append(a, b...)
}
