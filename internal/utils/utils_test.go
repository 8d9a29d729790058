package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWord(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"Home", "home"},
		{"Café", "cafe"},
		{"  naïve ", "naive"},
		{"Jürgen", "jurgen"},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := NormalizeWord(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFoldMarksKeepsCase(t *testing.T) {
	got, err := FoldMarks("  Café ")
	require.NoError(t, err)
	assert.Equal(t, "Cafe", got)
}

func TestInputChecks(t *testing.T) {
	assert.True(t, IsKeypadInput("4663"))
	assert.True(t, IsKeypadInput("*#0"))
	assert.False(t, IsKeypadInput("46a"))
	assert.False(t, IsKeypadInput(""))

	assert.True(t, IsValidInput("home"))
	assert.True(t, IsValidInput("ice-cream"))
	assert.False(t, IsValidInput("4663"))
	assert.False(t, IsValidInput("ho$me"))
	assert.False(t, IsValidInput("aaaa"))
	assert.False(t, IsValidInput(""))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "65,535", FormatWithCommas(65535))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-1,234", FormatWithCommas(-1234))
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("home")
	assert.False(t, f.ShouldInclude("home"))
	assert.True(t, f.ShouldInclude("good"))
	assert.False(t, f.ShouldInclude("good"))
	assert.Equal(t, 2, f.Len())
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))
}

func TestTOMLRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[trie]\nmode = \"keypad\"\n[trie.keypad]\n2 = \"abc\"\n[dict]\nmax_words = 10\n"), 0644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	trieSection, ok := ExtractSection(data, "trie")
	require.True(t, ok)
	mode, ok := ExtractString(trieSection, "mode")
	assert.True(t, ok)
	assert.Equal(t, "keypad", mode)
	layout, ok := ExtractStringMap(trieSection, "keypad")
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"2": "abc"}, layout)

	dict, _ := ExtractSection(data, "dict")
	n, ok := ExtractInt64(dict, "max_words")
	assert.True(t, ok)
	assert.Equal(t, 10, n)
	_, ok = ExtractString(dict, "max_words")
	assert.False(t, ok)
}

func TestIsDataDir(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsDataDir(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("home\n"), 0644))
	assert.True(t, IsDataDir(dir))
	assert.False(t, IsDataDir(filepath.Join(dir, "words.txt")))
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	res := CheckDirStatus(dir)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.NoError(t, res.Error)
	assert.False(t, FileExists(filepath.Join(dir, ".write_test")))
}
