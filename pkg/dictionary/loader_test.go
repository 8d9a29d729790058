package dictionary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	words  []string
	freqs  map[string]int
	reject map[string]bool
}

func newSink(reject ...string) *recordingSink {
	s := &recordingSink{freqs: make(map[string]int), reject: make(map[string]bool)}
	for _, w := range reject {
		s.reject[w] = true
	}
	return s
}

func (s *recordingSink) AddWord(word string, frequency int) error {
	if s.reject[word] {
		return errors.New("rejected")
	}
	s.words = append(s.words, word)
	s.freqs[word] = frequency
	return nil
}

func writeChunkFile(t *testing.T, dir, name string, entries []Entry) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, entries))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
}

func TestChunkRoundTrip(t *testing.T) {
	in := []Entry{{"home", 65535}, {"good", 300}, {"gone", 1}, {"hood", 100000}, {"a", 0}}
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, in))

	out, err := ReadChunk(&buf)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"home", 65535}, {"good", 300}, {"gone", 1}, {"hood", 65535}, {"a", 1}}, out)
}

func TestReadChunkCorrupt(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteChunk(&buf, []Entry{{"home", 3}}))
		_, err := ReadChunk(bytes.NewReader(buf.Bytes()[:buf.Len()-1]))
		assert.ErrorIs(t, err, ErrCorruptChunk)
	})

	t.Run("negative count", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(-1)))
		_, err := ReadChunk(&buf)
		assert.ErrorIs(t, err, ErrCorruptChunk)
	})

	t.Run("zero rank", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(1)))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(1)))
		buf.WriteString("a")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
		_, err := ReadChunk(&buf)
		assert.ErrorIs(t, err, ErrCorruptChunk)
	})
}

func TestReadText(t *testing.T) {
	src := `# keypad words
home 3
good 2

gone
hood x
the 5 extra
an 0
`
	entries, err := ReadText(strings.NewReader(src), 7)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"home", 3}, {"good", 2}, {"gone", 7}}, entries)
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, "dict_0001.bin", []Entry{{"a", 1}})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "short.bin"), []byte{1}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.csv"), []byte("a"), 0644))

	f, err := DetectFileFormat(filepath.Join(dir, "dict_0001.bin"))
	require.NoError(t, err)
	assert.Equal(t, FormatChunk, f)

	f, err = DetectFileFormat(filepath.Join(dir, "words.txt"))
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
	assert.Equal(t, "Plain Text Dictionary", f.String())

	_, err = DetectFileFormat(filepath.Join(dir, "short.bin"))
	assert.Error(t, err)
	_, err = DetectFileFormat(filepath.Join(dir, "words.csv"))
	assert.Error(t, err)
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, "dict_0002.bin", []Entry{{"gone", 1}, {"hood", 1}})
	writeChunkFile(t, dir, "dict_0001.bin", []Entry{{"home", 3}, {"good", 2}})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("hello 4\nthe\n"), 0644))

	t.Run("available files are ordered", func(t *testing.T) {
		files, err := NewLoader(dir, 0, 1).GetAvailable()
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, 1, files[0].ChunkID)
		assert.Equal(t, 2, files[0].WordCount)
		assert.Equal(t, 2, files[1].ChunkID)
		assert.Equal(t, FormatText, files[2].Format)
	})

	t.Run("loads everything", func(t *testing.T) {
		sink := newSink()
		stats, err := NewLoader(dir, 0, 9).LoadInto(sink)
		require.NoError(t, err)
		assert.Equal(t, []string{"home", "good", "gone", "hood", "hello", "the"}, sink.words)
		assert.Equal(t, 9, sink.freqs["the"])
		assert.Equal(t, 3, sink.freqs["home"])
		assert.Equal(t, LoaderStats{Files: 3, LoadedWords: 6, MaxFrequency: 9}, stats)
	})

	t.Run("respects max words", func(t *testing.T) {
		sink := newSink()
		stats, err := NewLoader(dir, 3, 1).LoadInto(sink)
		require.NoError(t, err)
		assert.Equal(t, []string{"home", "good", "gone"}, sink.words)
		assert.Equal(t, 2, stats.Files)
	})

	t.Run("skips rejected words", func(t *testing.T) {
		sink := newSink("good")
		stats, err := NewLoader(dir, 0, 1).LoadInto(sink)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.SkippedWords)
		assert.NotContains(t, sink.words, "good")
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewLoader(t.TempDir(), 0, 1).LoadInto(newSink())
		assert.Error(t, err)
	})
}
