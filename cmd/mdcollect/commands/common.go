package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdcollect/internal/config"
	"git.home.luguber.info/inful/mdcollect/internal/metrics"
)

// Global carries per-invocation state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	RunID  string
}

// CLI definition & global flags.
type CLI struct {
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" env:"MDCOLLECT_METRICS_FILE" help:"Write run metrics in Prometheus textfile format to this path."`

	Collector CollectorCmd `cmd:"" help:"mdBook preprocessor: collect marker payloads into a JSON map"`
	Tagger    TaggerCmd    `cmd:"" help:"mdBook preprocessor: index tag markers in both directions"`
	Scan      ScanCmd      `cmd:"" help:"Run the preprocessors over a local book or Markdown directory"`
}

// AfterApply runs after flag parsing; setup logging once.
// Logs go to stderr since stdout carries the preprocessor protocol.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.LogLevelEnv)).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// newRecorder returns a Prometheus-backed recorder when a metrics file was
// requested, and a no-op recorder with a nil registry otherwise.
func (c *CLI) newRecorder() (metrics.Recorder, *prometheus.Registry) {
	if c.MetricsFile == "" {
		return metrics.NoopRecorder{}, nil
	}
	reg := prometheus.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), reg
}

// flushMetrics writes reg to the metrics file when one was requested.
func (c *CLI) flushMetrics(reg *prometheus.Registry) error {
	if reg == nil || c.MetricsFile == "" {
		return nil
	}
	return metrics.WriteTextfile(reg, c.MetricsFile)
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
