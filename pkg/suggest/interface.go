// Package suggest turns typed input into ranked word suggestions on top of
// the trie package, in plain text or phone keypad mode.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns exact matches then completions for input, at most limit of them.
	Complete(input string, limit int) []Suggestion

	// Match returns only the words spelled by exactly len(input) keys.
	Match(input string) []Suggestion

	// AddWord adds a word with its frequency to the completer
	AddWord(word string, frequency int) error

	// Mode reports how input is interpreted.
	Mode() Mode

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
