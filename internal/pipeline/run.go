package pipeline

import (
	"iter"
	"time"

	"git.home.luguber.info/inful/mdcollect/internal/metrics"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// Pipeline drives a fixed set of processors over one pass.
type Pipeline struct {
	procs    []Processor
	sink     sink.Sink
	recorder metrics.Recorder
	started  time.Time
}

// New returns a pipeline that flushes through s. Processors run in the
// order given.
func New(s sink.Sink, recorder metrics.Recorder, procs ...Processor) *Pipeline {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Pipeline{procs: procs, sink: s, recorder: recorder, started: time.Now()}
}

// Visit hands doc to every processor.
func (p *Pipeline) Visit(doc *Document) {
	for _, proc := range p.procs {
		proc.Process(doc)
	}
}

// Finish flushes every processor, stopping at the first persistence error.
func (p *Pipeline) Finish() error {
	defer func() { p.recorder.ObserveRunDuration(time.Since(p.started)) }()
	for _, proc := range p.procs {
		if err := proc.Flush(p.sink); err != nil {
			return err
		}
	}
	return nil
}

// Reports returns the report of each processor keyed by name.
func (p *Pipeline) Reports() map[string]Report {
	out := make(map[string]Report, len(p.procs))
	for _, proc := range p.procs {
		out[proc.Name()] = proc.Report()
	}
	return out
}

// Run visits every document in docs and then flushes.
func (p *Pipeline) Run(docs iter.Seq[*Document]) error {
	for doc := range docs {
		p.Visit(doc)
	}
	return p.Finish()
}
