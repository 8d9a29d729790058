package trie

import (
	"unicode"

	"golang.org/x/exp/constraints"
)

// Mapper expands one input symbol into the ordered symbols to look up at
// the current trie level. A trie picks its mapper once and keeps it.
type Mapper[S constraints.Ordered] interface {
	Candidates(sym S) []S
}

// Identity maps every symbol to itself.
type Identity[S constraints.Ordered] struct{}

// Candidates implements Mapper.
func (Identity[S]) Candidates(sym S) []S {
	return []S{sym}
}

func orIdentity[S constraints.Ordered](m Mapper[S]) Mapper[S] {
	if m == nil {
		return Identity[S]{}
	}
	return m
}

// Keypad maps phone keypad digits to their letters. The table is fixed
// when the Keypad is built and never changes afterwards.
type Keypad struct {
	letters map[rune][]rune
	digits  map[rune]rune
}

// DefaultLayout is the standard ITU E.161 letter assignment.
var DefaultLayout = map[rune]string{
	'2': "abc",
	'3': "def",
	'4': "ghi",
	'5': "jkl",
	'6': "mno",
	'7': "pqrs",
	'8': "tuv",
	'9': "wxyz",
}

// NewKeypad builds a Keypad from a digit to letters table. Letters are
// lower-cased, matching the words stored in a trie, and keep the order
// they are given in.
func NewKeypad(layout map[rune]string) Keypad {
	k := Keypad{
		letters: make(map[rune][]rune, len(layout)),
		digits:  make(map[rune]rune),
	}
	for digit, letters := range layout {
		lower := []rune(letters)
		for i, l := range lower {
			lower[i] = unicode.ToLower(l)
			k.digits[lower[i]] = digit
		}
		k.letters[digit] = lower
	}
	return k
}

// DefaultKeypad returns a Keypad using DefaultLayout.
func DefaultKeypad() Keypad {
	return NewKeypad(DefaultLayout)
}

// Candidates implements Mapper. Digits outside the table give nothing.
func (k Keypad) Candidates(digit rune) []rune {
	letters := k.letters[digit]
	if len(letters) == 0 {
		return nil
	}
	out := make([]rune, len(letters))
	copy(out, letters)
	return out
}

// Digits returns the key presses that type word, and false when some
// letter is not on the keypad.
func (k Keypad) Digits(word []rune) ([]rune, bool) {
	out := make([]rune, 0, len(word))
	for _, r := range word {
		d, ok := k.digits[r]
		if !ok {
			return nil, false
		}
		out = append(out, d)
	}
	return out, true
}
