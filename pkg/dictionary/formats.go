package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // Chunked binary format, dict_NNNN.bin
	FormatText               // One "word [frequency]" per line
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // At least word count header
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
}

// maxChunkWords bounds the header of a chunk file.
const maxChunkWords = 1000000

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatChunk {
		return validateChunkHeader(filename)
	}
	return nil
}

// validateChunkHeader reads the word count header of a chunk file.
func validateChunkHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 || wordCount > maxChunkWords {
		return fmt.Errorf("%w: word count %d in %s", ErrCorruptChunk, wordCount, filename)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".bin":
		if err := ValidateFileFormat(filename, FormatChunk); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	case ".txt":
		if err := ValidateFileFormat(filename, FormatText); err != nil {
			return FormatUnknown, err
		}
		return FormatText, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
