// Package export turns stored records and editor text into downloadable
// payloads: one record's raw bytes, a zip bundle of the whole store, or a
// plain text file.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pardal23/gato23/internal/archive"
	"github.com/pardal23/gato23/internal/store"
)

const (
	// BackupName is the file name of a whole-store bundle.
	BackupName = "vault_backup.zip"
	// BackupMimeType is the content type of a whole-store bundle.
	BackupMimeType = "application/zip"

	// TextExportName is the file name of exported editor text.
	TextExportName = "edited_text.txt"
	// TextMimeType is the content type of exported editor text.
	TextMimeType = "text/plain"

	// FallbackMimeType is used for records stored without a content type.
	FallbackMimeType = "application/octet-stream"
)

// Download is a payload ready to be handed to the user.
type Download struct {
	Name     string
	MimeType string
	Data     []byte
}

// Save writes the payload into dir under the base name of d.Name and returns
// the written path. An existing file with the same name is replaced.
func (d Download) Save(dir string) (string, error) {
	name := filepath.Base(filepath.FromSlash(d.Name))
	if name == "." || name == string(filepath.Separator) || name == ".." {
		return "", fmt.Errorf("save download: unusable file name %q", d.Name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save download: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, d.Data, 0o644); err != nil {
		return "", fmt.Errorf("save download %s: %w", path, err)
	}
	return path, nil
}

// Getter reads records.
type Getter interface {
	Get(ctx context.Context, id int64) (store.Record, error)
	GetAll(ctx context.Context) ([]store.Record, error)
}

// Exporter builds downloads from a record source.
type Exporter struct {
	store  Getter
	logger *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// New returns an exporter reading from st.
func New(st Getter, opts ...Option) *Exporter {
	e := &Exporter{store: st, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportOne returns the raw bytes of one record under its original name.
func (e *Exporter) ExportOne(ctx context.Context, id int64) (Download, error) {
	rec, err := e.store.Get(ctx, id)
	if err != nil {
		return Download{}, err
	}

	mimeType := rec.MimeType
	if mimeType == "" {
		mimeType = FallbackMimeType
	}

	e.logger.Debug("exported record", zap.Int64("id", id), zap.String("name", rec.Name))
	return Download{Name: rec.Name, MimeType: mimeType, Data: rec.Data}, nil
}

// ExportAll bundles records into a zip archive. It returns ok == false when
// there is nothing to export.
func (e *Exporter) ExportAll(records []store.Record) (Download, bool, error) {
	if len(records) == 0 {
		return Download{}, false, nil
	}

	entries := make([]archive.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, archive.Entry{Name: rec.Name, Data: rec.Data})
	}

	bundle, err := archive.Encode(entries)
	if err != nil {
		return Download{}, false, fmt.Errorf("export bundle: %w", err)
	}

	e.logger.Debug("exported bundle", zap.Int("records", len(records)), zap.Int("bytes", len(bundle)))
	return Download{Name: BackupName, MimeType: BackupMimeType, Data: bundle}, true, nil
}

// ExportStore bundles every record in the store.
func (e *Exporter) ExportStore(ctx context.Context) (Download, bool, error) {
	records, err := e.store.GetAll(ctx)
	if err != nil {
		return Download{}, false, err
	}
	return e.ExportAll(records)
}

// Text returns editor content as a plain text download.
func Text(content string) Download {
	return Download{Name: TextExportName, MimeType: TextMimeType, Data: []byte(content)}
}

// ErrNothingToExport is returned by callers that treat an empty export as a
// failure.
var ErrNothingToExport = errors.New("nothing to export")
