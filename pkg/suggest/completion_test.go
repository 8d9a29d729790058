package suggest

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/bastiangx/keyserve/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordsOf(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[i] = x.Word
	}
	return out
}

func keypadCompleter(t *testing.T, opts ...Option) *Completer {
	t.Helper()
	c, err := NewCompleter(ModeKeypad, opts...)
	require.NoError(t, err)
	for _, e := range []struct {
		word string
		freq int
	}{{"home", 3}, {"good", 2}, {"gone", 1}, {"hood", 1}} {
		require.NoError(t, c.AddWord(e.word, e.freq))
	}
	return c
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("keypad")
	require.NoError(t, err)
	assert.Equal(t, ModeKeypad, m)

	_, err = ParseMode("qwerty")
	assert.ErrorIs(t, err, ErrUnknownMode)
	_, err = NewCompleter("qwerty")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestKeypadComplete(t *testing.T) {
	c := keypadCompleter(t)

	t.Run("exact length ranked by path frequency", func(t *testing.T) {
		res := c.Complete("4663", 10)
		assert.Equal(t, []string{"home", "hood", "good", "gone"}, wordsOf(res))
		for _, s := range res {
			assert.True(t, s.Exact)
		}
		assert.Equal(t, 3, res[0].Frequency)
	})

	t.Run("completions ranked by word frequency", func(t *testing.T) {
		res := c.Complete("46", 10)
		assert.Equal(t, []string{"home", "good", "gone", "hood"}, wordsOf(res))
		assert.False(t, res[0].Exact)
	})

	t.Run("limit", func(t *testing.T) {
		assert.Equal(t, []string{"home", "good"}, wordsOf(c.Complete("46", 2)))
		assert.Len(t, c.Complete("46", 0), 4)
	})

	t.Run("unmapped and invalid input", func(t *testing.T) {
		assert.Empty(t, c.Complete("1", 10))
		assert.Empty(t, c.Complete("abc", 10))
		assert.Empty(t, c.Complete("", 10))
		assert.Empty(t, c.Complete("99999", 10))
	})

	t.Run("match", func(t *testing.T) {
		assert.Equal(t, []string{"home", "hood", "good", "gone"}, wordsOf(c.Match("4663")))
		assert.Empty(t, c.Match("46"))
	})
}

func TestExactComplete(t *testing.T) {
	c, err := NewCompleter(ModeExact)
	require.NoError(t, err)
	require.NoError(t, c.AddWord("Home", 3))
	require.NoError(t, c.AddWord("good", 2))
	require.NoError(t, c.AddWord("gone", 1))
	require.NoError(t, c.AddWord("Café", 1))
	require.NoError(t, c.AddWord("go", 1))

	assert.Equal(t, []string{"go", "good", "gone"}, wordsOf(c.Complete("go", 10)))
	assert.Equal(t, []string{"Go", "Good", "Gone"}, wordsOf(c.Complete("Go", 10)))
	assert.Equal(t, []string{"home"}, wordsOf(c.Complete("ho", 10)))
	assert.Equal(t, []string{"cafe"}, wordsOf(c.Complete("café", 10)))
	assert.Equal(t, []string{"gone"}, wordsOf(c.Match("gone")))
	assert.Empty(t, c.Match("gon"))
}

func TestAddWord(t *testing.T) {
	c := keypadCompleter(t)

	assert.ErrorIs(t, c.AddWord("don't", 1), ErrUntypable)
	assert.ErrorIs(t, c.AddWord("   ", 1), ErrEmptyWord)
	assert.ErrorIs(t, c.AddWord("the", 0), trie.ErrInvalidWeight)
	assert.ErrorIs(t, c.AddWord("the", -3), trie.ErrInvalidWeight)
	assert.Empty(t, c.Complete("843", 10))

	require.NoError(t, c.AddWord("gone", 5))
	res := c.Complete("4663", 10)
	assert.Equal(t, []string{"gone", "good", "home", "hood"}, wordsOf(res))
	assert.Equal(t, 6, res[0].Frequency)

	stats := c.Stats()
	assert.Equal(t, 4, stats["totalWords"])
	assert.Equal(t, 6, stats["maxFrequency"])
}

func TestCustomKeypadLayout(t *testing.T) {
	c, err := NewCompleter(ModeKeypad, WithKeypadLayout(map[rune]string{'1': "ab", '2': "cd"}))
	require.NoError(t, err)
	require.NoError(t, c.AddWord("bad", 1))
	assert.ErrorIs(t, c.AddWord("home", 1), ErrUntypable)
	assert.Equal(t, []string{"bad"}, wordsOf(c.Complete("112", 5)))
}

func TestCompleteUsesHotCache(t *testing.T) {
	c := keypadCompleter(t, WithHotCache(16))

	first := c.Complete("46", 10)
	second := c.Complete("46", 10)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Stats()["hotCacheHits"])

	require.NoError(t, c.AddWord("the", 1))
	c.Complete("46", 10)
	assert.Equal(t, 2, c.Stats()["hotCacheHits"])

	require.NoError(t, c.AddWord("good", 5))
	assert.Equal(t, []string{"good", "home", "gone", "hood"}, wordsOf(c.Complete("46", 10)))
	assert.Equal(t, 2, c.Stats()["hotCacheHits"])
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	c := keypadCompleter(t, WithHotCache(8))
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = c.AddWord(fmt.Sprintf("go%c", 'a'+rune(j%26)), i+1)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Complete("46", 5)
				c.Match("4663")
			}
		}()
	}
	wg.Wait()
	assert.ElementsMatch(t, []string{"home", "hood", "good", "gone"}, wordsOf(c.Match("4663")))
}

func TestApplyCapitalization(t *testing.T) {
	assert.Equal(t, "Home", ApplyCapitalization("home", []bool{true}))
	assert.Equal(t, "hOme", ApplyCapitalization("home", []bool{false, true, false, false, true}))
	assert.Equal(t, "home", ApplyCapitalization("home", nil))
}

func TestCapitalizationFollowsNormalisedInput(t *testing.T) {
	c, err := NewCompleter(ModeExact)
	require.NoError(t, err)
	require.NoError(t, c.AddWord("good", 2))
	require.NoError(t, c.AddWord("café", 1))

	assert.Equal(t, []string{"Good"}, wordsOf(c.Complete(" Go", 5)))
	assert.Equal(t, []string{"gOod"}, wordsOf(c.Complete("  gO ", 5)))
	assert.Equal(t, []string{"CAfe"}, wordsOf(c.Complete("CA\u0301f", 5)))
}

func TestAddWordRejectsFrequencyOverflow(t *testing.T) {
	c := keypadCompleter(t)
	require.NoError(t, c.AddWord("good", math.MaxInt-3))
	err := c.AddWord("good", math.MaxInt)
	assert.ErrorIs(t, err, trie.ErrFrequencyOverflow)

	res := c.Match("4663")
	require.NotEmpty(t, res)
	assert.Equal(t, "good", res[0].Word)
	assert.Equal(t, math.MaxInt-1, res[0].Frequency)
	assert.Equal(t, math.MaxInt-1, c.Stats()["maxFrequency"])
}
