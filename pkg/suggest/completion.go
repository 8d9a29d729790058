package suggest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/bastiangx/keyserve/internal/utils"
	"github.com/bastiangx/keyserve/pkg/trie"
	"github.com/charmbracelet/log"
)

// Mode picks how typed input maps onto stored words.
type Mode string

const (
	// ModeExact looks words up letter by letter.
	ModeExact Mode = "exact"
	// ModeKeypad reads input as phone keypad digits.
	ModeKeypad Mode = "keypad"
)

var (
	// ErrUnknownMode is returned for modes other than exact and keypad.
	ErrUnknownMode = errors.New("unknown completion mode")
	// ErrEmptyWord is returned when a word normalises to nothing.
	ErrEmptyWord = errors.New("empty word")
	// ErrUntypable is returned in keypad mode for words with letters the
	// keypad cannot produce.
	ErrUntypable = errors.New("word cannot be typed on the keypad")
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeExact, ModeKeypad:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Suggestion is one ranked word. Exact marks words spelled by the whole
// input rather than completed past it.
type Suggestion struct {
	Word      string
	Frequency int
	Exact     bool `json:",omitempty"`
}

// Option configures a Completer.
type Option func(*Completer)

// WithKeypadLayout replaces the default keypad letters.
func WithKeypadLayout(layout map[rune]string) Option {
	return func(c *Completer) {
		if len(layout) > 0 {
			c.keypad = trie.NewKeypad(layout)
		}
	}
}

// WithHotCache caches up to maxEntries query results.
func WithHotCache(maxEntries int) Option {
	return func(c *Completer) {
		if maxEntries > 0 {
			c.hotCache = NewHotCache(maxEntries)
		}
	}
}

// Completer owns one trie and serialises writers against readers.
type Completer struct {
	mode         Mode
	keypad       trie.Keypad
	trie         *trie.Trie[rune]
	hotCache     *HotCache
	wordFreqs    map[string]int
	maxFrequency int
	mu           sync.RWMutex
}

// NewCompleter returns an empty completer for mode.
func NewCompleter(mode Mode, opts ...Option) (*Completer, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	c := &Completer{
		mode:      mode,
		keypad:    trie.DefaultKeypad(),
		wordFreqs: make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	if mode == ModeKeypad {
		c.trie = trie.New[rune](c.keypad)
	} else {
		c.trie = trie.New[rune](trie.Identity[rune]{})
	}
	return c, nil
}

// Mode implements ICompleter.
func (c *Completer) Mode() Mode { return c.mode }

// AddWord normalises word and inserts it with frequency as weight. Adding
// a word again adds to its frequency.
func (c *Completer) AddWord(word string, frequency int) error {
	normal, err := utils.NormalizeWord(word)
	if err != nil {
		return fmt.Errorf("normalise %q: %w", word, err)
	}
	if normal == "" {
		return ErrEmptyWord
	}
	key := []rune(normal)
	input := normal
	if c.mode == ModeKeypad {
		digits, ok := c.keypad.Digits(key)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUntypable, word)
		}
		input = string(digits)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.trie.InsertWeighted(key, frequency); err != nil {
		return fmt.Errorf("insert %q: %w", word, err)
	}
	c.wordFreqs[normal] += frequency
	if f := c.wordFreqs[normal]; f > c.maxFrequency {
		c.maxFrequency = f
	}
	if c.hotCache != nil {
		if n := c.hotCache.Invalidate(input); n > 0 {
			log.Debugf("Invalidated %d cached inputs for '%s'", n, normal)
		}
	}
	return nil
}

// Complete returns the words the input spells exactly, in trie rank order,
// followed by longer words starting with it, most frequent first. At most
// limit suggestions are returned; a limit below one returns all of them.
func (c *Completer) Complete(input string, limit int) []Suggestion {
	key, capitals, ok := c.prepare(input)
	if !ok {
		return []Suggestion{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.hotCache != nil {
		if cached, hit := c.hotCache.Get(string(key), limit); hit {
			return applyCapitalization(cached, capitals)
		}
	}

	filter := utils.NewSuggestionFilter()
	suggestions := c.collect(c.trie.Search(key), true, filter)
	if limit < 1 || len(suggestions) < limit {
		more := c.collect(c.trie.SearchAll(key), false, filter)
		sort.SliceStable(more, func(i, j int) bool {
			a, b := more[i], more[j]
			if a.Frequency != b.Frequency {
				return a.Frequency > b.Frequency
			}
			if len(a.Word) != len(b.Word) {
				return len(a.Word) < len(b.Word)
			}
			return a.Word < b.Word
		})
		suggestions = append(suggestions, more...)
	}
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	if c.hotCache != nil {
		c.hotCache.Put(string(key), limit, suggestions)
	}
	return applyCapitalization(suggestions, capitals)
}

// Match returns the words spelled by exactly the input, ranked by trie
// frequency. It walks the trie layer by layer.
func (c *Completer) Match(input string) []Suggestion {
	key, capitals, ok := c.prepare(input)
	if !ok {
		return []Suggestion{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return applyCapitalization(c.collect(c.trie.SearchLayered(key), true, utils.NewSuggestionFilter()), capitals)
}

// Stats returns statistics about the loaded dictionary
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := map[string]int{
		"totalWords":   c.trie.Len(),
		"maxFrequency": c.maxFrequency,
	}
	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
	}
	return stats
}

// prepare turns raw input into a trie key. Exact mode normalises like
// AddWord and remembers which positions of the normalised input were upper
// case.
func (c *Completer) prepare(input string) ([]rune, []bool, bool) {
	if c.mode == ModeKeypad {
		if !utils.IsKeypadInput(input) {
			return nil, nil, false
		}
		return []rune(input), nil, true
	}
	folded, err := utils.FoldMarks(input)
	if err != nil || folded == "" {
		return nil, nil, false
	}
	raw := []rune(folded)
	capitals := make([]bool, len(raw))
	for i, r := range raw {
		capitals[i] = unicode.IsUpper(r)
	}
	return []rune(strings.ToLower(folded)), capitals, true
}

func (c *Completer) collect(keys [][]rune, exact bool, filter *utils.SuggestionFilter) []Suggestion {
	out := make([]Suggestion, 0, len(keys))
	for _, k := range keys {
		word := string(k)
		if !filter.ShouldInclude(word) {
			continue
		}
		out = append(out, Suggestion{Word: word, Frequency: c.wordFreqs[word], Exact: exact})
	}
	return out
}

func applyCapitalization(suggestions []Suggestion, capitals []bool) []Suggestion {
	if !hasCapitals(capitals) {
		return suggestions
	}
	for i := range suggestions {
		suggestions[i].Word = ApplyCapitalization(suggestions[i].Word, capitals)
	}
	return suggestions
}

func hasCapitals(capitals []bool) bool {
	for _, c := range capitals {
		if c {
			return true
		}
	}
	return false
}

// ApplyCapitalization upper-cases the letters of word at the positions the
// user typed in upper case.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}
	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] {
			wordRunes[i] = unicode.ToUpper(wordRunes[i])
		}
	}
	return string(wordRunes)
}
