package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeWord lower-cases word and strips combining marks, so "Café"
// is stored as "cafe" and can be typed on a keypad.
func NormalizeWord(word string) (string, error) {
	folded, err := FoldMarks(word)
	if err != nil {
		return "", err
	}
	return strings.ToLower(folded), nil
}

// FoldMarks trims word and strips combining marks but keeps its case.
// NormalizeWord is FoldMarks followed by lower-casing.
func FoldMarks(word string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(word))
	if err != nil {
		return "", err
	}
	return out, nil
}

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
// Useful for ranking items that are already sorted.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
