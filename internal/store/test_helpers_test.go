package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pardal23/gato23/internal/testutil"
)

// createTestStore creates a new opened store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s := New(path, WithClock(testutil.NewDeterministicClock()))
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// textDraft creates a draft whose text content mirrors its bytes.
func textDraft(name, content string) Draft {
	return Draft{
		Name:        name,
		MimeType:    "text/plain",
		Data:        []byte(content),
		TextContent: &content,
	}
}
