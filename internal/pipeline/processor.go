package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
)

// Processor turns one document into an outline.Result. Every failure,
// including a panic inside an extractor, becomes an error record naming the
// file; a partial outline is never returned.
type Processor struct {
	heuristics outline.Heuristics
	opts       parser.Options
	stats      *Stats
	log        *slog.Logger

	extractorFor func(filename string, opts parser.Options) (parser.Extractor, error)
}

func NewProcessor(h outline.Heuristics, opts parser.Options, log *slog.Logger) *Processor {
	return &Processor{
		heuristics:   h,
		opts:         opts,
		stats:        NewStats(time.Hour),
		log:          log,
		extractorFor: parser.ForFile,
	}
}

// Stats exposes the processing latency window.
func (p *Processor) Stats() *Stats {
	return p.stats
}

// ProcessFile reads and processes the document at path. Error records carry
// path as given.
func (p *Processor) ProcessFile(ctx context.Context, path string) outline.Result {
	if err := ctx.Err(); err != nil {
		return outline.Failure(path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		p.log.Warn("read failed", "file", path, "error", err)
		p.stats.Record(0, true)
		return outline.Failure(path, err)
	}
	return p.process(ctx, data, path, nil)
}

// ProcessBytes processes an in-memory document; filename picks the
// extractor by extension.
func (p *Processor) ProcessBytes(ctx context.Context, data []byte, filename string) outline.Result {
	return p.process(ctx, data, filename, nil)
}

func (p *Processor) process(ctx context.Context, data []byte, filename string, phase func(JobStatus)) (res outline.Result) {
	log := p.log.With("file", filename)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while processing document", "panic", r)
			res = outline.Failure(filename, fmt.Errorf("internal error: %v", r))
		}
		p.stats.Record(time.Since(start).Milliseconds(), !res.OK())
	}()

	if err := ctx.Err(); err != nil {
		return outline.Failure(filename, err)
	}

	notify(phase, StatusExtracting)
	ext, err := p.extractorFor(filename, p.opts)
	if err != nil {
		log.Warn("unsupported document", "error", err)
		return outline.Failure(filename, err)
	}
	segs, err := ext.Extract(bytes.NewReader(data), filename)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		return outline.Failure(filename, fmt.Errorf("extract: %w", err))
	}
	for i, s := range segs {
		if err := s.Validate(); err != nil {
			log.Warn("malformed segment", "index", i, "error", err)
			return outline.Failure(filename, fmt.Errorf("segment %d: %w", i, err))
		}
	}

	if err := ctx.Err(); err != nil {
		return outline.Failure(filename, err)
	}

	notify(phase, StatusAnalyzing)
	o := outline.Build(segs, p.heuristics)
	log.Debug("outline built",
		"segments", len(segs),
		"entries", len(o.Entries),
		"title", o.Title,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return outline.Success(o)
}

func notify(phase func(JobStatus), s JobStatus) {
	if phase != nil {
		phase(s)
	}
}
