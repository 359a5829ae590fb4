package mdbook

import (
	"io"
	"log/slog"

	"git.home.luguber.info/inful/mdcollect/internal/logfields"
	"git.home.luguber.info/inful/mdcollect/internal/metrics"
	"git.home.luguber.info/inful/mdcollect/internal/pipeline"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// ProcessorFactory builds the processor for one run from the context.
type ProcessorFactory func(ctx *Context) (pipeline.Processor, error)

// Preprocess runs one preprocessor pass: it reads the book from in, feeds
// every chapter through the processor built by factory, flushes the aggregate
// through s and writes the rewritten book to out.
func Preprocess(in io.Reader, out io.Writer, s sink.Sink, recorder metrics.Recorder, factory ProcessorFactory) error {
	ctx, book, err := ReadInput(in)
	if err != nil {
		return err
	}
	proc, err := factory(ctx)
	if err != nil {
		return err
	}

	p := pipeline.New(s, recorder, proc)
	book.Chapters(func(ch *Chapter) {
		doc := &pipeline.Document{Path: ch.Path(), Name: ch.Name(), Content: ch.Content()}
		p.Visit(doc)
		if doc.Content != ch.Content() {
			ch.SetContent(doc.Content)
		}
	})
	if err := p.Finish(); err != nil {
		return err
	}

	r := proc.Report()
	slog.Debug("Preprocessor pass complete",
		logfields.Processor(proc.Name()),
		logfields.Count(r.Documents),
		slog.Int("matched", r.Matched),
		slog.Int("failed", r.Failed))
	return WriteBook(out, book)
}
