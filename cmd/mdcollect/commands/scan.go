package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdcollect/internal/config"
	"git.home.luguber.info/inful/mdcollect/internal/corpus"
	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
	"git.home.luguber.info/inful/mdcollect/internal/logfields"
	"git.home.luguber.info/inful/mdcollect/internal/pipeline"
	"git.home.luguber.info/inful/mdcollect/internal/report"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
	"git.home.luguber.info/inful/mdcollect/internal/watch"
)

// ScanCmd runs the processors over a directory without mdBook.
type ScanCmd struct {
	Dir         string `arg:"" optional:"" default:"." type:"existingdir" help:"Book root (with book.toml) or plain Markdown directory."`
	NoCollector bool   `name:"no-collector" help:"Skip the collector."`
	NoTagger    bool   `name:"no-tagger" help:"Skip the tagger."`
	Out         string `short:"o" name:"out" type:"path" help:"Write drained documents to this directory."`
	Tree        bool   `name:"tree" help:"Print collected paths and the tag index as trees."`
	Watch       bool   `short:"w" name:"watch" help:"Re-run whenever a source file changes."`

	stdout io.Writer
}

func (s *ScanCmd) Run(g *Global, root *CLI) error {
	if err := config.LoadEnvFiles(s.Dir); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load environment file").
			Fatal().
			WithContext("path", s.Dir).
			Build()
	}

	res, err := s.scanOnce(g, root)
	if err != nil || !s.Watch {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w := &watch.Watcher{
		Root:   res.srcRoot,
		Ignore: res.isOutput,
		Job: func(context.Context) {
			next := *g
			next.RunID = uuid.NewString()
			if _, err := s.scanOnce(&next, root); err != nil {
				next.logger().Warn("rescan failed", logfields.RunID(next.RunID), logfields.Error(err))
			}
		},
	}
	return w.Run(ctx)
}

// scanResult describes what one scan touched.
type scanResult struct {
	srcRoot string
	outputs []string
	outDir  string
	reports map[string]pipeline.Report
}

// isOutput reports whether path is something the scan itself writes.
func (r *scanResult) isOutput(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, o := range r.outputs {
		if abs == o {
			return true
		}
	}
	return r.outDir != "" && (abs == r.outDir || strings.HasPrefix(abs, r.outDir+string(filepath.Separator)))
}

func (s *ScanCmd) scanOnce(g *Global, root *CLI) (*scanResult, error) {
	start := time.Now()
	logger := g.logger().With(logfields.RunID(g.RunID))

	book, err := config.LoadBookDir(s.Dir)
	if err != nil {
		return nil, err
	}
	config.ApplyEnvOverrides(book, os.Environ())
	srcRoot := book.SourceRoot()

	rec, reg := root.newRecorder()
	opts := []pipeline.Option{pipeline.WithLogger(logger), pipeline.WithRecorder(rec)}
	res := &scanResult{srcRoot: absPath(srcRoot)}

	var procs []pipeline.Processor
	var collector *pipeline.Collector
	var tagger *pipeline.Tagger
	if !s.NoCollector {
		cfg, err := config.ResolveCollector(book.Preprocessor(config.CollectorName), srcRoot)
		if err != nil {
			return nil, err
		}
		collector = pipeline.NewCollector(cfg, opts...)
		procs = append(procs, collector)
		res.outputs = append(res.outputs, absPath(cfg.SavePath))
	}
	if !s.NoTagger {
		cfg, err := config.ResolveTagger(book.Preprocessor(config.TaggerName), srcRoot)
		if err != nil {
			return nil, err
		}
		tagger = pipeline.NewTagger(cfg, opts...)
		procs = append(procs, tagger)
		res.outputs = append(res.outputs, absPath(cfg.Tag2PostsPath), absPath(cfg.Post2TagsPath))
	}
	if root.MetricsFile != "" {
		res.outputs = append(res.outputs, absPath(root.MetricsFile))
	}
	if s.Out != "" {
		res.outDir = absPath(s.Out)
	}

	docs, err := corpus.Discover(srcRoot)
	if err != nil {
		return nil, err
	}
	p := pipeline.New(sink.NewFileSink(), rec, procs...)
	if err := p.Run(slices.Values(docs)); err != nil {
		return nil, err
	}
	res.reports = p.Reports()

	if s.Out != "" {
		if err := corpus.WriteDrained(s.Out, docs); err != nil {
			return nil, err
		}
	}
	if s.Tree {
		if err := s.printTrees(collector, tagger); err != nil {
			return nil, err
		}
	}
	if err := root.flushMetrics(reg); err != nil {
		return nil, err
	}

	for name, r := range res.reports {
		logger.Info("Scan complete",
			logfields.Processor(name),
			logfields.Count(r.Documents),
			slog.Int("matched", r.Matched),
			slog.Int("failed", r.Failed),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	}
	return res, nil
}

func (s *ScanCmd) printTrees(collector *pipeline.Collector, tagger *pipeline.Tagger) error {
	if collector != nil {
		if _, err := fmt.Fprint(s.out(), report.PathTree("collected", collector.Data().Paths())); err != nil {
			return err
		}
	}
	if tagger != nil {
		if _, err := fmt.Fprint(s.out(), report.TagTree(tagger.Index())); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScanCmd) out() io.Writer {
	if s.stdout != nil {
		return s.stdout
	}
	return os.Stdout
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
