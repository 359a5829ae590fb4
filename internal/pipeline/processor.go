package pipeline

import (
	"log/slog"

	"git.home.luguber.info/inful/mdcollect/internal/metrics"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// Document is one page of the corpus. Processors rewrite Content in place.
type Document struct {
	Path    string
	Name    string
	Content string
}

// Processor extracts data from documents and persists the aggregate at the
// end of a pass.
type Processor interface {
	Name() string
	Process(doc *Document)
	Flush(s sink.Sink) error
	Report() Report
}

// Report summarizes what a processor saw during a pass.
type Report struct {
	Documents int
	Matched   int
	Collected int
	Failed    int
}

// Option configures a processor.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// WithLogger sets the logger used for per-document warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
