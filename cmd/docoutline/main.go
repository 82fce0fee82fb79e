package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/dgallion1/docoutline/internal/batch"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/dgallion1/docoutline/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "0.1.0"

// options are the flags shared by every subcommand.
type options struct {
	heuristics string
	workers    int
	store      string
	verbose    bool
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "docoutline",
		Short: "Infer titles and heading outlines from documents",
		Long: `docoutline reads PDF, DOCX, HTML, Markdown and plain text documents and
writes one JSON file per document holding its title and an outline of
H1, H2, ... headings with page numbers.

Without a subcommand it processes ./input into ./output.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), opts, "input", "output", false)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.heuristics, "heuristics", "", "TOML file overriding outline heuristics (default $HEURISTICS_FILE)")
	flags.IntVar(&opts.workers, "workers", runtime.NumCPU(), "documents processed concurrently")
	flags.StringVar(&opts.store, "store", "", "also save results to a store: sqlite or pathstore (default $STORE_BACKEND)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(runCmd(opts))
	rootCmd.AddCommand(watchCmd(opts))
	rootCmd.AddCommand(fileCmd(opts))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run [input] [output]",
		Short: "Process every supported document in a directory",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := dirArgs(args)
			return runBatch(cmd.Context(), opts, in, out, false)
		},
	}
}

func watchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [input] [output]",
		Short: "Process a directory, then keep processing documents as they arrive",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := dirArgs(args)
			return runBatch(cmd.Context(), opts, in, out, true)
		},
	}
}

func fileCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Print the outline of a single document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json", "tree", "markdown":
			default:
				return fmt.Errorf("unknown format %q (want json, tree or markdown)", format)
			}

			log := newLogger(opts.verbose)
			proc, _, err := setup(opts, log, false)
			if err != nil {
				return err
			}

			res := proc.ProcessFile(cmd.Context(), args[0])
			if err := printResult(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
			if !res.OK() {
				return errors.New("document could not be processed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, tree or markdown")
	return cmd
}

func dirArgs(args []string) (string, string) {
	in, out := "input", "output"
	if len(args) > 0 {
		in = args[0]
	}
	if len(args) > 1 {
		out = args[1]
	}
	return in, out
}

// setup builds the processor and, when withStore is set and a backend is
// selected, the result store.
func setup(opts *options, log *slog.Logger, withStore bool) (*pipeline.Processor, store.Store, error) {
	cfg := config.Load()
	if opts.store != "" {
		cfg.StoreBackend = opts.store
	}
	if opts.heuristics != "" {
		cfg.HeuristicsFile = opts.heuristics
	}
	if err := cfg.ValidateStore(); err != nil {
		return nil, nil, err
	}

	heuristics, err := config.LoadHeuristics(cfg.HeuristicsFile)
	if err != nil {
		return nil, nil, err
	}
	var st store.Store
	if withStore {
		if st, err = store.Open(cfg); err != nil {
			return nil, nil, fmt.Errorf("open result store: %w", err)
		}
	}

	proc := pipeline.NewProcessor(heuristics, parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext}, log)
	return proc, st, nil
}

func runBatch(ctx context.Context, opts *options, in, out string, watch bool) error {
	log := newLogger(opts.verbose)
	proc, st, err := setup(opts, log, true)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	runner := batch.NewRunner(proc, batch.Options{
		InputDir:  in,
		OutputDir: out,
		Workers:   opts.workers,
		Store:     st,
		Progress:  progressPrinter(log),
	}, log)

	if watch {
		return runner.Watch(ctx)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Processed %d documents (%d failed)\n", summary.Processed, summary.Failed)
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// progressPrinter writes one line per document to an interactive stderr,
// and logs instead when stderr is redirected.
func progressPrinter(log *slog.Logger) batch.ProgressFunc {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return func(i, n int, name string) {
			fmt.Fprintf(os.Stderr, "Processing %d/%d: %s\n", i, n, name)
		}
	}
	return func(i, n int, name string) {
		log.Info("processing", "index", i, "total", n, "file", name)
	}
}

func printResult(w io.Writer, res outline.Result, format string) error {
	if !res.OK() || format == "json" {
		return batch.EncodeJSON(w, res)
	}
	tree := doctree.FromOutline(*res.Outline)
	if format == "tree" {
		return batch.EncodeJSON(w, tree)
	}
	_, err := io.WriteString(w, tree.Markdown())
	return err
}
