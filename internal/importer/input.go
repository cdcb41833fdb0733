package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Input is one file handed to the pipeline.
type Input struct {
	// Name is the original filename, used as the record name.
	Name string

	// MimeType is the caller's content type; empty means unknown and is
	// detected from content for non-archive inputs.
	MimeType string

	// Read returns the full content.
	Read func() ([]byte, error)
}

// FileInput reads the file at path when the pipeline reaches it. The record
// name is the base name of path.
func FileInput(path string) Input {
	return Input{
		Name: filepath.Base(path),
		Read: func() ([]byte, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			return data, nil
		},
	}
}

// BytesInput wraps an in-memory buffer.
func BytesInput(name, mimeType string, data []byte) Input {
	return Input{
		Name:     name,
		MimeType: mimeType,
		Read:     func() ([]byte, error) { return data, nil },
	}
}

// detectMimeType sniffs the content type of data. Empty buffers stay
// unknown.
func detectMimeType(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return mimetype.Detect(data).String()
}
