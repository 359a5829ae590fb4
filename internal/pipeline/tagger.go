package pipeline

import (
	"git.home.luguber.info/inful/mdcollect/internal/aggregate"
	"git.home.luguber.info/inful/mdcollect/internal/config"
	"git.home.luguber.info/inful/mdcollect/internal/logfields"
	"git.home.luguber.info/inful/mdcollect/internal/marker"
	"git.home.luguber.info/inful/mdcollect/internal/metrics"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// Tagger reads the first tags marker of each document into a bidirectional
// tag index.
type Tagger struct {
	cfg    *config.TaggerConfig
	index  *aggregate.TagIndex
	report Report
	options
}

// NewTagger returns a tagger for cfg.
func NewTagger(cfg *config.TaggerConfig, opts ...Option) *Tagger {
	return &Tagger{cfg: cfg, index: aggregate.NewTagIndex(), options: buildOptions(opts)}
}

func (t *Tagger) Name() string { return config.TaggerName }

// Process records the document's tags and always removes the marker, even
// when the literal holds no tags.
func (t *Tagger) Process(doc *Document) {
	t.report.Documents++
	span, ok := t.cfg.Pattern.FindFirst(doc.Content)
	if !ok {
		t.recorder.ObserveDocument(t.Name(), metrics.OutcomeNoMarker)
		return
	}
	t.report.Matched++

	tags := aggregate.SplitTags(span.Literal, t.cfg.Split)
	t.index.Add(doc.Path, doc.Name, tags)
	doc.Content = marker.Drain(doc.Content, span)
	t.report.Collected++
	t.recorder.ObserveDocument(t.Name(), metrics.OutcomeCollected)
	t.logger.Debug("Tagged document",
		logfields.Path(doc.Path),
		logfields.Count(len(tags)))
}

// Flush writes both directions of the index. Nothing is written when no
// document carried a tags marker.
func (t *Tagger) Flush(s sink.Sink) error {
	if t.index.Len() == 0 {
		t.logger.Debug("No tags found, skipping output", logfields.Processor(t.Name()))
		return nil
	}
	if err := s.Persist(t.cfg.Tag2PostsPath, t.index.ExportTag2Posts()); err != nil {
		return err
	}
	t.recorder.IncOutputWritten(t.Name())
	if err := s.Persist(t.cfg.Post2TagsPath, t.index.ExportPost2Tags()); err != nil {
		return err
	}
	t.recorder.IncOutputWritten(t.Name())
	t.logger.Info("Wrote tag index",
		logfields.Processor(t.Name()),
		logfields.Count(len(t.index.TagNames())))
	return nil
}

func (t *Tagger) Report() Report { return t.report }

// Index exposes the tag index built so far.
func (t *Tagger) Index() *aggregate.TagIndex { return t.index }
