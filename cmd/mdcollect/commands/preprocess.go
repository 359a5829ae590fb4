package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/mdcollect/internal/config"
	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
	"git.home.luguber.info/inful/mdcollect/internal/logfields"
	"git.home.luguber.info/inful/mdcollect/internal/mdbook"
	"git.home.luguber.info/inful/mdcollect/internal/pipeline"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// SupportsCmd answers mdBook's renderer probe. Exiting zero means supported.
type SupportsCmd struct {
	Renderer string `arg:"" help:"Renderer name, e.g. html"`
}

func (s *SupportsCmd) Run(g *Global, _ *CLI) error {
	if !mdbook.Supports(s.Renderer) {
		return ferrors.ValidationError(fmt.Sprintf("renderer %q is not supported", s.Renderer)).Build()
	}
	g.logger().Debug("Renderer supported", "renderer", s.Renderer)
	return nil
}

// CollectorCmd groups the collector preprocessor entry points.
type CollectorCmd struct {
	Process  CollectorProcessCmd `cmd:"" default:"1" hidden:"" help:"Process the book on stdin"`
	Supports SupportsCmd         `cmd:"" help:"Report whether a renderer is supported"`
}

// CollectorProcessCmd runs one collector pass over stdin/stdout.
type CollectorProcessCmd struct{}

func (c *CollectorProcessCmd) Run(g *Global, root *CLI) error {
	return runPreprocessor(g, root, os.Stdin, os.Stdout, newCollector)
}

// TaggerCmd groups the tagger preprocessor entry points.
type TaggerCmd struct {
	Process  TaggerProcessCmd `cmd:"" default:"1" hidden:"" help:"Process the book on stdin"`
	Supports SupportsCmd      `cmd:"" help:"Report whether a renderer is supported"`
}

// TaggerProcessCmd runs one tagger pass over stdin/stdout.
type TaggerProcessCmd struct{}

func (t *TaggerProcessCmd) Run(g *Global, root *CLI) error {
	return runPreprocessor(g, root, os.Stdin, os.Stdout, newTagger)
}

// processorFactory builds one processor from the mdBook context.
type processorFactory func(g *Global, ctx *mdbook.Context, opts ...pipeline.Option) (pipeline.Processor, error)

func runPreprocessor(g *Global, root *CLI, in io.Reader, out io.Writer, factory processorFactory) error {
	rec, reg := root.newRecorder()
	err := mdbook.Preprocess(in, out, sink.NewFileSink(), rec, func(ctx *mdbook.Context) (pipeline.Processor, error) {
		g.logger().Debug("Preprocessor context",
			logfields.RunID(g.RunID),
			"renderer", ctx.Renderer,
			"mdbook_version", ctx.MDBookVersion)
		return factory(g, ctx, pipeline.WithRecorder(rec))
	})
	if err != nil {
		return err
	}
	return root.flushMetrics(reg)
}

func newCollector(g *Global, ctx *mdbook.Context, opts ...pipeline.Option) (pipeline.Processor, error) {
	cfg, err := config.ResolveCollector(ctx.PreprocessorTable(config.CollectorName), ctx.SourceRoot())
	if err != nil {
		return nil, err
	}
	opts = append(opts, pipeline.WithLogger(g.logger().With(logfields.RunID(g.RunID))))
	return pipeline.NewCollector(cfg, opts...), nil
}

func newTagger(g *Global, ctx *mdbook.Context, opts ...pipeline.Option) (pipeline.Processor, error) {
	cfg, err := config.ResolveTagger(ctx.PreprocessorTable(config.TaggerName), ctx.SourceRoot())
	if err != nil {
		return nil, err
	}
	opts = append(opts, pipeline.WithLogger(g.logger().With(logfields.RunID(g.RunID))))
	return pipeline.NewTagger(cfg, opts...), nil
}
