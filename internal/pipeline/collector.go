package pipeline

import (
	"git.home.luguber.info/inful/mdcollect/internal/aggregate"
	"git.home.luguber.info/inful/mdcollect/internal/config"
	"git.home.luguber.info/inful/mdcollect/internal/logfields"
	"git.home.luguber.info/inful/mdcollect/internal/marker"
	"git.home.luguber.info/inful/mdcollect/internal/metrics"
	"git.home.luguber.info/inful/mdcollect/internal/payload"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// Collector parses the first payload marker of each document into a flat
// path-keyed map.
type Collector struct {
	cfg    *config.CollectorConfig
	flat   *aggregate.Flat
	report Report
	options
}

// NewCollector returns a collector for cfg.
func NewCollector(cfg *config.CollectorConfig, opts ...Option) *Collector {
	return &Collector{cfg: cfg, flat: aggregate.NewFlat(), options: buildOptions(opts)}
}

func (c *Collector) Name() string { return config.CollectorName }

// Process extracts the payload. The marker is removed only when its literal
// parses; a broken payload stays visible in the page.
func (c *Collector) Process(doc *Document) {
	c.report.Documents++
	span, ok := c.cfg.Pattern.FindFirst(doc.Content)
	if !ok {
		c.recorder.ObserveDocument(c.Name(), metrics.OutcomeNoMarker)
		return
	}
	c.report.Matched++

	m, err := payload.Parse(span.Literal, c.cfg.InputType)
	if err != nil {
		c.report.Failed++
		c.recorder.ObserveDocument(c.Name(), metrics.OutcomeFailed)
		c.logger.Warn("Failed to parse collected payload",
			logfields.Processor(c.Name()),
			logfields.Path(doc.Path),
			logfields.Name(doc.Name),
			logfields.Format(c.cfg.InputType.String()),
			logfields.Error(err))
		return
	}

	c.flat.Add(doc.Path, doc.Name, m, c.cfg.AddTitle)
	doc.Content = marker.Drain(doc.Content, span)
	c.report.Collected++
	c.recorder.ObserveDocument(c.Name(), metrics.OutcomeCollected)
}

// Flush writes the aggregate to the configured save path. Nothing is written
// when no document contributed.
func (c *Collector) Flush(s sink.Sink) error {
	if c.flat.Len() == 0 {
		c.logger.Debug("Nothing collected, skipping output",
			logfields.Processor(c.Name()),
			logfields.Output(c.cfg.SavePath))
		return nil
	}
	if err := s.Persist(c.cfg.SavePath, c.flat.Export()); err != nil {
		return err
	}
	c.recorder.IncOutputWritten(c.Name())
	c.logger.Info("Wrote collected data",
		logfields.Processor(c.Name()),
		logfields.Output(c.cfg.SavePath),
		logfields.Count(c.flat.Len()))
	return nil
}

func (c *Collector) Report() Report { return c.report }

// Data exposes the aggregate built so far.
func (c *Collector) Data() *aggregate.Flat { return c.flat }
