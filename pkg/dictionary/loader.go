// Package dictionary reads word lists from disk and feeds them to a completer.
//
// Two formats are understood. Binary chunks named dict_0001.bin,
// dict_0002.bin, ... hold an int32 little endian word count followed by
// entries of uint16 length, word bytes and uint16 rank, rank 1 being the
// most frequent word. Text files hold one "word [frequency]" per line;
// blank lines and lines starting with '#' are ignored.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrCorruptChunk is returned for chunk files whose contents cannot be
// trusted.
var ErrCorruptChunk = errors.New("corrupt chunk")

// Entry is one dictionary word and its frequency score.
type Entry struct {
	Word      string
	Frequency int
}

// WordSink receives loaded words. suggest.Completer implements it.
type WordSink interface {
	AddWord(word string, frequency int) error
}

// ChunkInfo contains metadata about a dictionary file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	Format    FileFormat
	WordCount int
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	Files        int
	LoadedWords  int
	SkippedWords int
	MaxFrequency int
}

// Loader loads every dictionary file of a directory, chunks first in ID
// order, then text files by name, until maxWords words are loaded.
type Loader struct {
	dirPath          string
	maxWords         int
	defaultFrequency int
}

// NewLoader creates a loader. maxWords of 0 loads everything; text entries
// without a frequency get defaultFrequency.
func NewLoader(dirPath string, maxWords, defaultFrequency int) *Loader {
	if defaultFrequency < 1 {
		defaultFrequency = 1
	}
	return &Loader{
		dirPath:          dirPath,
		maxWords:         maxWords,
		defaultFrequency: defaultFrequency,
	}
}

// GetAvailable scans the directory for dictionary files.
func (l *Loader) GetAvailable() ([]ChunkInfo, error) {
	chunkFiles, err := filepath.Glob(filepath.Join(l.dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}
	var chunks []ChunkInfo
	for _, file := range chunkFiles {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, Format: FormatChunk, WordCount: wordCount})
	}
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})

	textFiles, err := filepath.Glob(filepath.Join(l.dirPath, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for text files: %w", err)
	}
	sort.Strings(textFiles)
	for _, file := range textFiles {
		chunks = append(chunks, ChunkInfo{Filename: file, Format: FormatText})
	}
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadInto loads the directory into sink. Words the sink rejects are
// counted and skipped; unreadable files abort the load.
func (l *Loader) LoadInto(sink WordSink) (LoaderStats, error) {
	var stats LoaderStats
	files, err := l.GetAvailable()
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, fmt.Errorf("no dictionary files found in %s", l.dirPath)
	}
	log.Debugf("Found %d dictionary files", len(files))

	for _, f := range files {
		if l.maxWords > 0 && stats.LoadedWords >= l.maxWords {
			break
		}
		entries, err := LoadFile(f.Filename, l.defaultFrequency)
		if err != nil {
			return stats, err
		}
		stats.Files++
		for _, e := range entries {
			if l.maxWords > 0 && stats.LoadedWords >= l.maxWords {
				break
			}
			if err := sink.AddWord(e.Word, e.Frequency); err != nil {
				log.Debugf("Skipping %q from %s: %v", e.Word, f.Filename, err)
				stats.SkippedWords++
				continue
			}
			stats.LoadedWords++
			if e.Frequency > stats.MaxFrequency {
				stats.MaxFrequency = e.Frequency
			}
		}
		log.Debugf("Loaded %s (%s): %d words so far", f.Filename, f.Format, stats.LoadedWords)
	}
	return stats, nil
}

// LoadFile reads one dictionary file of either format.
func LoadFile(filename string, defaultFrequency int) ([]Entry, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	var entries []Entry
	switch format {
	case FormatChunk:
		entries, err = ReadChunk(bufio.NewReader(file))
	case FormatText:
		entries, err = ReadText(file, defaultFrequency)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return entries, nil
}

// ReadChunk decodes a binary chunk. Ranks become scores with
// 65536 - rank, so rank 1 scores highest.
func ReadChunk(r io.Reader) ([]Entry, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return nil, fmt.Errorf("%w: word count %d", ErrCorruptChunk, totalEntries)
	}

	entries := make([]Entry, 0, totalEntries)
	for i := 0; i < int(totalEntries); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("%w: entry %d of %d: %v", ErrCorruptChunk, i, totalEntries, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("%w: failed to read word: %v", ErrCorruptChunk, err)
		}
		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("%w: failed to read rank: %v", ErrCorruptChunk, err)
		}
		if rank == 0 {
			return nil, fmt.Errorf("%w: rank 0 for %q", ErrCorruptChunk, wordBytes)
		}
		entries = append(entries, Entry{Word: string(wordBytes), Frequency: 65536 - int(rank)})
	}
	return entries, nil
}

// WriteChunk encodes entries in the chunk format. Frequencies are clamped
// to the 1..65535 range a rank can express.
func WriteChunk(w io.Writer, entries []Entry) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Word) > math.MaxUint16 {
			return fmt.Errorf("word of %d bytes is too long", len(e.Word))
		}
		freq := min(max(e.Frequency, 1), math.MaxUint16)
		if err := binary.Write(w, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.Word); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(65536-freq)); err != nil {
			return err
		}
	}
	return nil
}

// ReadText parses the text format. Lines with an unparsable frequency are
// logged and skipped.
func ReadText(r io.Reader, defaultFrequency int) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		freq := defaultFrequency
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || len(fields) > 2 {
				log.Warnf("Skipping malformed dictionary line %d: %q", lineNo, line)
				continue
			}
			freq = n
		}
		entries = append(entries, Entry{Word: fields[0], Frequency: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
