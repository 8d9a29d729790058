package utils

// SuggestionFilter drops words that were already emitted for one request.
// Exact matches and completions overlap, so the completer runs both through
// one filter. Not safe for concurrent use.
type SuggestionFilter struct {
	seen map[string]struct{}
}

// NewSuggestionFilter returns a filter that treats every word in skip as
// already seen.
func NewSuggestionFilter(skip ...string) *SuggestionFilter {
	seen := make(map[string]struct{}, len(skip))
	for _, w := range skip {
		seen[w] = struct{}{}
	}
	return &SuggestionFilter{seen: seen}
}

// ShouldInclude reports whether word is new, and remembers it.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	if _, ok := f.seen[word]; ok {
		return false
	}
	f.seen[word] = struct{}{}
	return true
}

// Len returns how many distinct words the filter has seen.
func (f *SuggestionFilter) Len() int {
	return len(f.seen)
}
