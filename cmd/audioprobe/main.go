// Package main provides the CLI entry point for audioprobe.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/audioprobe"
	"github.com/five82/audioprobe/internal/config"
	coreerrors "github.com/five82/audioprobe/internal/errors"
	"github.com/five82/audioprobe/internal/logging"
	"github.com/five82/audioprobe/internal/reporter"
	"github.com/five82/audioprobe/internal/util"
)

const (
	appName    = "audioprobe"
	appVersion = "0.2.0"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliArgs holds the parsed command-line flags.
type cliArgs struct {
	maxConcurrent int
	json          bool
	recursive     bool
	output        string
	verbose       bool
	quiet         bool
	backend       string
	timeout       time.Duration
	events        bool
	configPath    string
	logDir        string
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var ca cliArgs

	cmd := &cobra.Command{
		Use:   appName + " [flags] PATH...",
		Short: "Analyze audio files concurrently",
		Long: `Probe audio and media files with ffprobe (or MediaInfo) and report
their duration, bitrate, sample rate, channels, codec, container and tags.

Directories are scanned for known media extensions. Per-file failures are
listed in the report and do not change the exit status.`,
		Version:       appVersion,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, ca)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), cfg, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(c.UsageString())
		return err
	})

	f := cmd.Flags()
	f.IntVarP(&ca.maxConcurrent, "max-concurrent", "j", config.DefaultMaxConcurrent, "Maximum number of files probed at once (1-2000)")
	f.BoolVar(&ca.json, "json", false, "Write the report as JSON")
	f.BoolVarP(&ca.recursive, "recursive", "r", false, "Descend into subdirectories")
	f.StringVarP(&ca.output, "output", "o", "", "Write the report to FILE instead of stdout")
	f.BoolVarP(&ca.verbose, "verbose", "v", false, "Enable debug diagnostics and per-file failure lines")
	f.BoolVarP(&ca.quiet, "quiet", "q", false, "Only show errors")
	f.BoolP("version", "V", false, "Print version information")
	f.StringVar(&ca.backend, "backend", config.BackendFFprobe, "Metadata tool (ffprobe, mediainfo)")
	f.DurationVar(&ca.timeout, "timeout", 0, "Per-file probe timeout, e.g. 30s (0 disables)")
	f.BoolVar(&ca.events, "events", false, "Emit NDJSON progress events on stderr")
	f.StringVar(&ca.configPath, "config", "", "YAML configuration file")
	f.StringVar(&ca.logDir, "log-dir", "", "Also write diagnostics to a log file in this directory")

	return cmd
}

// buildConfig layers defaults, the config file, AUDIOPROBE_* environment
// variables and explicitly set flags, in that order.
func buildConfig(cmd *cobra.Command, ca cliArgs) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := config.Load(ca.configPath, cfg); err != nil {
		return nil, coreerrors.NewConfigError("cannot load configuration", err)
	}

	changed := cmd.Flags().Changed
	if changed("max-concurrent") {
		cfg.MaxConcurrent = ca.maxConcurrent
	}
	if changed("json") {
		cfg.Format = config.FormatText
		if ca.json {
			cfg.Format = config.FormatJSON
		}
	}
	if changed("recursive") {
		cfg.Recursive = ca.recursive
	}
	if changed("output") {
		cfg.OutputPath = ca.output
	}
	if changed("verbose") {
		cfg.Verbose = ca.verbose
	}
	if changed("quiet") {
		cfg.Quiet = ca.quiet
	}
	if changed("backend") {
		cfg.Backend = ca.backend
	}
	if changed("timeout") {
		cfg.ProbeTimeout = ca.timeout
	}
	if changed("events") {
		cfg.Events = ca.events
	}
	if changed("log-dir") {
		cfg.LogDir = ca.logDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, coreerrors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

func execute(ctx context.Context, cfg *config.Config, paths []string, stdout, stderr io.Writer) error {
	sink, err := logging.OpenFileSink(cfg.LogDir, time.Now())
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	logger := logging.Init(logging.LevelFor(cfg.Verbose, cfg.Quiet), sink.Tee(stderr))
	if path := sink.FilePath(); path != "" {
		logger.Info("writing diagnostics", "log_file", path)
	}

	rep := selectReporter(cfg, stderr)

	analyzer, err := audioprobe.New(
		audioprobe.WithMaxConcurrent(cfg.MaxConcurrent),
		audioprobe.WithRecursive(cfg.Recursive),
		audioprobe.WithBackend(cfg.Backend, cfg.ToolPath()),
		audioprobe.WithTimeout(cfg.ProbeTimeout),
		audioprobe.WithReporter(rep),
		audioprobe.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	files, failures, err := analyzer.Collect(paths)
	if err != nil {
		return err
	}

	// Open the destination before any probe runs.
	out := stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return coreerrors.NewOutputError(cfg.OutputPath, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if !cfg.Quiet {
		if err := analyzer.CheckBackend(); err != nil {
			warn(rep, stderr, fmt.Sprintf("%v; every file will be reported as failed", err))
		}
		if util.ExceedsDescriptorLimit(analyzer.MaxConcurrent()) {
			warn(rep, stderr, fmt.Sprintf("--max-concurrent %d may exceed the open file limit (%d)",
				analyzer.MaxConcurrent(), util.MaxOpenFiles()))
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := analyzer.AnalyzeFiles(ctx, files, failures)
	result.SortByPath()

	format, err := audioprobe.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	data, err := audioprobe.Render(result, format)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return coreerrors.NewOutputError(outputName(cfg), err)
	}

	logger.Debug("report written", "destination", outputName(cfg), "bytes", len(data))
	return nil
}

// selectReporter picks the live progress display. Progress is never mixed
// into a JSON report on stdout and is only drawn when stderr is a terminal.
func selectReporter(cfg *config.Config, stderr io.Writer) reporter.Reporter {
	switch {
	case cfg.Quiet:
		return reporter.NullReporter{}
	case cfg.Events:
		return reporter.NewJSONReporterWithWriter(stderr)
	case cfg.JSON() && cfg.OutputPath == "":
		return reporter.NullReporter{}
	case isTerminal(stderr):
		return reporter.NewTerminalReporterWithWriter(stderr, cfg.Verbose)
	default:
		return reporter.NullReporter{}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// warn sends message through the live reporter, or straight to w when
// progress output is off.
func warn(rep reporter.Reporter, w io.Writer, message string) {
	if _, off := rep.(reporter.NullReporter); !off {
		rep.Warning(message)
		return
	}
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprint(w, "Warning: ")
	_, _ = fmt.Fprintln(w, message)
}

func outputName(cfg *config.Config) string {
	if cfg.OutputPath == "" {
		return "stdout"
	}
	return cfg.OutputPath
}
