package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/sqlrag/internal/embedding"
	"github.com/hyperjump/sqlrag/internal/extract"
	"github.com/hyperjump/sqlrag/internal/models"
	"github.com/hyperjump/sqlrag/internal/storage"
	"go.uber.org/zap"
)

// UnsupportedPolicy decides what happens to files whose type has no loader.
type UnsupportedPolicy int

const (
	// SkipUnsupported counts the file in IngestReport.Skipped and continues.
	SkipUnsupported UnsupportedPolicy = iota
	// RejectUnsupported stops ingestion with extract.ErrUnsupportedType.
	RejectUnsupported
)

// ParsePolicy maps the config values "skip" and "reject" to a policy.
func ParsePolicy(s string) (UnsupportedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipUnsupported, nil
	case "reject":
		return RejectUnsupported, nil
	default:
		return SkipUnsupported, fmt.Errorf("unknown unsupported policy: %q", s)
	}
}

func (p UnsupportedPolicy) String() string {
	if p == RejectUnsupported {
		return "reject"
	}
	return "skip"
}

// Ingestor loads documents, chunks them, embeds every chunk and appends the
// results to the embedding store. Each chunk is one insert; a failure leaves
// earlier inserts in place.
type Ingestor struct {
	store     storage.EmbeddingStore
	embedder  embedding.Embedder
	chunker   *Chunker
	extractor *extract.Extractor
	policy    UnsupportedPolicy
	logger    *zap.Logger
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*Ingestor)

// WithLogger sets a logger for per-file debug output.
func WithLogger(l *zap.Logger) IngestorOption {
	return func(in *Ingestor) { in.logger = l }
}

// WithPolicy sets the unsupported-type policy. The default is SkipUnsupported.
func WithPolicy(p UnsupportedPolicy) IngestorOption {
	return func(in *Ingestor) { in.policy = p }
}

// WithExtractor replaces the default extractor.
func WithExtractor(e *extract.Extractor) IngestorOption {
	return func(in *Ingestor) { in.extractor = e }
}

// NewIngestor creates an ingestor writing to store.
func NewIngestor(store storage.EmbeddingStore, embedder embedding.Embedder, chunker *Chunker, opts ...IngestorOption) *Ingestor {
	in := &Ingestor{
		store:     store,
		embedder:  embedder,
		chunker:   chunker,
		extractor: extract.NewExtractor(),
		policy:    SkipUnsupported,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.chunker == nil {
		in.chunker = NewChunker(DefaultChunkSize, DefaultChunkOverlap, DefaultSeparator)
	}
	return in
}

// IngestFiles ingests uploaded documents in order.
func (in *Ingestor) IngestFiles(ctx context.Context, files []models.Upload) (*models.IngestReport, error) {
	report := &models.IngestReport{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !in.accept(f.Name, report) {
			if in.policy == RejectUnsupported {
				return report, fmt.Errorf("%s: %w", f.Name, extract.ErrUnsupportedType)
			}
			continue
		}
		units, err := in.extractor.Load(f.Name, f.Content)
		if err != nil {
			return report, err
		}
		if err := in.ingestUnits(ctx, f.Name, units, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// IngestPaths ingests files from disk. Directories are walked recursively and
// their unsupported files are ignored regardless of policy.
func (in *Ingestor) IngestPaths(ctx context.Context, paths []string) (*models.IngestReport, error) {
	report := &models.IngestReport{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return report, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			if err := in.ingestDirectory(ctx, p, report); err != nil {
				return report, err
			}
			continue
		}
		if err := in.ingestFile(ctx, p, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// IngestFile ingests one file from disk.
func (in *Ingestor) IngestFile(ctx context.Context, path string) (*models.IngestReport, error) {
	report := &models.IngestReport{}
	err := in.ingestFile(ctx, path, report)
	return report, err
}

func (in *Ingestor) ingestFile(ctx context.Context, path string, report *models.IngestReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !in.accept(path, report) {
		if in.policy == RejectUnsupported {
			return fmt.Errorf("%s: %w", path, extract.ErrUnsupportedType)
		}
		return nil
	}
	units, err := in.extractor.LoadFile(path)
	if err != nil {
		return err
	}
	return in.ingestUnits(ctx, path, units, report)
}

func (in *Ingestor) ingestDirectory(ctx context.Context, dir string, report *models.IngestReport) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !in.extractor.Supports(path) {
			return nil
		}
		// Resolve symlinks so only regular files are read
		finfo, err := os.Stat(path)
		if err != nil || !finfo.Mode().IsRegular() {
			return nil
		}
		return in.ingestFile(ctx, path, report)
	})
}

// accept reports whether name is loadable, recording it as skipped otherwise.
func (in *Ingestor) accept(name string, report *models.IngestReport) bool {
	if in.extractor.Supports(name) {
		return true
	}
	report.Skipped = append(report.Skipped, filepath.Base(name))
	in.logger.Debug("ingest skipping unsupported file",
		zap.String("name", name),
		zap.String("policy", in.policy.String()))
	return false
}

func (in *Ingestor) ingestUnits(ctx context.Context, name string, units []string, report *models.IngestReport) error {
	chunks := 0
	for _, unit := range units {
		for _, ch := range in.chunker.Split(unit) {
			if err := ctx.Err(); err != nil {
				return err
			}
			vec, err := in.embedder.Embed(ctx, ch.Content)
			if err != nil {
				return fmt.Errorf("embed chunk of %s: %w", filepath.Base(name), err)
			}
			id, err := in.store.Insert(ctx, ch.Content, vec)
			if err != nil {
				return fmt.Errorf("store chunk of %s: %w", filepath.Base(name), err)
			}
			report.Records = append(report.Records, id)
			chunks++
		}
	}
	report.Files++
	report.Chunks += chunks
	in.logger.Debug("ingest file done",
		zap.String("name", name),
		zap.Int("units", len(units)),
		zap.Int("chunks", chunks))
	return nil
}

// IsUnsupported reports whether err was caused by an unsupported file type.
func IsUnsupported(err error) bool {
	return errors.Is(err, extract.ErrUnsupportedType)
}
