package store

import (
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"
)

// Record is one persisted file.
type Record struct {
	ID       int64
	Name     string
	MimeType string
	Size     int64
	Data     []byte

	// TextContent is non-nil iff the data was classified as text at import.
	TextContent *string

	CreatedAt time.Time
	Checksum  string
}

// IsText reports whether the record carries text content.
func (r Record) IsText() bool {
	return r.TextContent != nil
}

// Draft is a record that has not been stored yet. The store assigns the
// identity, size, checksum and creation time.
type Draft struct {
	Name        string
	MimeType    string
	Data        []byte
	TextContent *string
}

// Checksum returns the hex BLAKE3-256 digest of data.
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
