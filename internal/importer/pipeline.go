package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pardal23/gato23/internal/archive"
	"github.com/pardal23/gato23/internal/classify"
	"github.com/pardal23/gato23/internal/store"
)

// ArchiveEntryMimeType is the content type given to every record expanded
// from an archive.
const ArchiveEntryMimeType = "application/octet-stream"

// Adder persists one draft and returns its identity.
type Adder interface {
	Add(ctx context.Context, d store.Draft) (int64, error)
}

// IDGenerator produces batch identifiers for log correlation.
type IDGenerator interface {
	Generate() string
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string { return uuid.NewString() }

// Pipeline imports batches of inputs into a store.
type Pipeline struct {
	store      Adder
	classifier *classify.Classifier
	logger     *zap.Logger
	ids        IDGenerator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClassifier sets the text/binary classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithIDGenerator sets the batch identifier source.
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Pipeline) { p.ids = g }
}

// New returns a pipeline writing to st.
func New(st Adder, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:      st,
		classifier: classify.Default(),
		logger:     zap.NewNop(),
		ids:        uuidGenerator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ImportAll imports every input in order and reports the outcome. It never
// stops early: each input is attempted regardless of earlier failures, and a
// report is returned even when every input failed.
func (p *Pipeline) ImportAll(ctx context.Context, inputs []Input) *Report {
	report := &Report{
		BatchID: p.ids.Generate(),
		Files:   make([]FileResult, 0, len(inputs)),
	}
	log := p.logger.With(zap.String("batch", report.BatchID))
	log.Debug("import starting", zap.Int("inputs", len(inputs)))

	for _, in := range inputs {
		res := p.importOne(ctx, in)
		report.add(res)

		if res.OK() {
			log.Info("imported", zap.String("name", in.Name), zap.Int("records", len(res.IDs)))
		} else {
			log.Warn("import failed",
				zap.String("name", in.Name),
				zap.Int("records", len(res.IDs)),
				zap.Error(res.Err),
			)
		}
	}

	log.Info("import finished",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Int("records", report.Records),
	)
	return report
}

func (p *Pipeline) importOne(ctx context.Context, in Input) FileResult {
	res := FileResult{Name: in.Name, IDs: []int64{}}

	if in.Read == nil {
		res.Err = errors.New("input has no content reader")
		return res
	}
	data, err := in.Read()
	if err != nil {
		res.Err = err
		return res
	}

	if format, ok := archive.DetectFormat(in.Name); ok {
		res.IDs, res.Err = p.importArchive(ctx, format, data)
		return res
	}

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = detectMimeType(data)
	}

	id, err := p.persist(ctx, in.Name, mimeType, data)
	if err != nil {
		res.Err = err
		return res
	}
	res.IDs = append(res.IDs, id)
	return res
}

// importArchive stores every file entry of the bundle. It stops at the first
// entry that cannot be extracted or stored and returns the IDs stored so far.
func (p *Pipeline) importArchive(ctx context.Context, format archive.Format, bundle []byte) ([]int64, error) {
	ids := []int64{}

	entries, err := archive.ExpandFormat(format, bundle)
	if err != nil {
		return ids, err
	}

	for entry, err := range entries {
		if err != nil {
			return ids, err
		}

		id, err := p.persist(ctx, entry.Name, ArchiveEntryMimeType, entry.Data)
		if err != nil {
			return ids, fmt.Errorf("entry %q: %w", entry.Name, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (p *Pipeline) persist(ctx context.Context, name, mimeType string, data []byte) (int64, error) {
	draft := store.Draft{
		Name:     name,
		MimeType: mimeType,
		Data:     data,
	}
	if text, ok := p.classifier.Classify(data); ok {
		draft.TextContent = &text
	}
	return p.store.Add(ctx, draft)
}
