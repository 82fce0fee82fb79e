// Package batch drives the outline pipeline over a directory of documents.
package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/dgallion1/docoutline/internal/store"
)

// ProgressFunc is called as each document starts, with its 1-based
// position among n documents.
type ProgressFunc func(i, n int, name string)

// Options configure a Runner.
type Options struct {
	InputDir  string
	OutputDir string
	// Workers bounds concurrent documents; values below 1 mean 1.
	Workers int
	// Store, when set, also receives every result.
	Store    store.Store
	Progress ProgressFunc
	// Debounce is how long Watch waits after the last write to a file
	// before processing it.
	Debounce time.Duration
}

// Summary counts the documents a run handled.
type Summary struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// Runner writes one <stem>.json per supported document in InputDir.
type Runner struct {
	proc *pipeline.Processor
	opts Options
	log  *slog.Logger

	// Output names are assigned once per input and kept for the life of
	// the Runner, so a rewrite under Watch lands in the same file.
	mu      sync.Mutex
	outputs map[string]string // input name -> output file name
	claimed map[string]string // output file name -> input name
}

func NewRunner(proc *pipeline.Processor, opts Options, log *slog.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	return &Runner{
		proc:    proc,
		opts:    opts,
		log:     log,
		outputs: make(map[string]string),
		claimed: make(map[string]string),
	}
}

// task is one input document and where its result goes.
type task struct {
	path string
	name string
	out  string
}

// Run processes every supported file currently in the input directory.
// A failing document gets an error record in place of its outline and the
// run continues.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	tasks, err := r.scan()
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}
	r.log.Info("batch started", "input", r.opts.InputDir, "output", r.opts.OutputDir, "documents", len(tasks), "workers", r.opts.Workers)

	var (
		mu      sync.Mutex
		summary Summary
		wg      sync.WaitGroup
	)
	sem := make(chan struct{}, r.opts.Workers)

dispatch:
	for i, t := range tasks {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}
		if r.opts.Progress != nil {
			r.opts.Progress(i+1, len(tasks), t.name)
		}
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			defer func() { <-sem }()
			ok := r.handle(ctx, t)
			mu.Lock()
			summary.Processed++
			if !ok {
				summary.Failed++
			}
			mu.Unlock()
		}(t)
	}
	wg.Wait()

	r.log.Info("batch finished", "processed", summary.Processed, "failed", summary.Failed)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// scan lists supported regular files in name order and assigns each a
// distinct output file. When two inputs share a stem, the one seen later
// keeps its extension in the output name.
func (r *Runner) scan() ([]task, error) {
	entries, err := os.ReadDir(r.opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var tasks []task
	for _, e := range entries {
		if !e.Type().IsRegular() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		tasks = append(tasks, r.newTask(e.Name()))
	}
	return tasks, nil
}

func (r *Runner) newTask(name string) task {
	return task{
		path: filepath.Join(r.opts.InputDir, name),
		name: name,
		out:  filepath.Join(r.opts.OutputDir, r.outputName(name)),
	}
}

// outputName returns the result file name for input name, assigning one on
// first use.
func (r *Runner) outputName(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if out, ok := r.outputs[name]; ok {
		return out
	}
	out := strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
	if _, taken := r.claimed[out]; taken {
		out = name + ".json"
	}
	for n := 2; ; n++ {
		if _, taken := r.claimed[out]; !taken {
			break
		}
		out = fmt.Sprintf("%s.%d.json", name, n)
	}
	r.outputs[name] = out
	r.claimed[out] = name
	return out
}

// handle processes one document and reports whether it produced an outline
// that was written successfully.
func (r *Runner) handle(ctx context.Context, t task) bool {
	log := r.log.With("file", t.name)

	var (
		res  outline.Result
		hash string
	)
	// Error records carry the input path.
	data, err := os.ReadFile(t.path)
	if err != nil {
		res = outline.Failure(t.path, err)
	} else {
		hash = pipeline.ContentHashHex(data)
		res = r.proc.ProcessBytes(ctx, data, t.path)
	}

	if err := WriteResult(t.out, res); err != nil {
		log.Error("write result failed", "output", t.out, "error", err)
		return false
	}

	if r.opts.Store != nil && hash != "" {
		rec := store.Record{
			ID:          hash[:16],
			File:        t.name,
			ContentHash: hash,
			Result:      res,
			CreatedAt:   time.Now().UTC(),
		}
		if err := r.opts.Store.Put(ctx, rec); err != nil {
			log.Error("store result failed", "error", err)
		}
	}

	if !res.OK() {
		log.Warn("document failed", "error", res.Err.Error)
		return false
	}
	log.Debug("document written", "output", t.out, "entries", len(res.Outline.Entries))
	return true
}

// WriteResult writes res to path as JSON indented by four spaces.
func WriteResult(path string, res outline.Result) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, res); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EncodeJSON writes v indented by four spaces, without HTML escaping.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return nil
}
