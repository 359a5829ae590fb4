// Package config resolves the preprocessor tables for the collector and the
// tagger into validated, ready-to-run settings.
//
// Tables come either from the mdBook context on stdin or from book.toml read
// by the standalone host. Keys the preprocessors do not own (command,
// renderers, before, after) are ignored.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
	"git.home.luguber.info/inful/mdcollect/internal/logfields"
	"git.home.luguber.info/inful/mdcollect/internal/marker"
	"git.home.luguber.info/inful/mdcollect/internal/payload"
)

// Preprocessor names as they appear under [preprocessor.<name>].
const (
	CollectorName = "collector"
	TaggerName    = "tagger"
)

// Collector defaults.
const (
	DefaultCollectorMarker = "collect"
	DefaultInputType       = "json"
	DefaultSavePath        = "collect.json"
	DefaultAddTitle        = true
)

// Tagger defaults.
const (
	DefaultTaggerMarker  = "tags"
	DefaultTag2PostsPath = "tag2posts.json"
	DefaultPost2TagsPath = "post2tags.json"
	DefaultSplit         = ";"
)

// CollectorConfig is the resolved collector configuration.
type CollectorConfig struct {
	Marker    string
	InputType payload.Format
	SavePath  string
	AddTitle  bool
	Pattern   *marker.Pattern
}

// TaggerConfig is the resolved tagger configuration.
type TaggerConfig struct {
	Marker        string
	Tag2PostsPath string
	Post2TagsPath string
	Split         string
	Pattern       *marker.Pattern
}

// ResolveCollector applies table over the collector defaults. A nil table
// yields the defaults. Relative save paths are joined to srcRoot.
func ResolveCollector(table map[string]any, srcRoot string) (*CollectorConfig, error) {
	cfg := &CollectorConfig{
		Marker:    DefaultCollectorMarker,
		InputType: payload.FormatJSON,
		SavePath:  resolvePath(srcRoot, DefaultSavePath),
		AddTitle:  DefaultAddTitle,
	}

	if s, ok, err := stringKey(table, "input_type"); err != nil {
		return nil, err
	} else if ok {
		f, known := payload.ParseFormat(s)
		if !known {
			slog.Warn("Unknown input_type, falling back to json",
				logfields.Processor(CollectorName),
				slog.String("input_type", s))
		}
		cfg.InputType = f
	}
	if s, ok, err := stringKey(table, "marker"); err != nil {
		return nil, err
	} else if ok {
		cfg.Marker = s
	}
	if s, ok, err := stringKey(table, "save_path"); err != nil {
		return nil, err
	} else if ok {
		cfg.SavePath = resolvePath(srcRoot, s)
	}
	if v, present := table["add_title"]; present {
		b, isBool := v.(bool)
		if !isBool {
			return nil, ferrors.ConfigError(fmt.Sprintf("add_title %s is not a valid boolean", describe(v))).
				WithContext("key", "add_title").
				Build()
		}
		cfg.AddTitle = b
	}

	p, err := marker.Compile(cfg.Marker, marker.GrammarPayload)
	if err != nil {
		return nil, err
	}
	cfg.Pattern = p
	return cfg, nil
}

// ResolveTagger applies table over the tagger defaults. A nil table yields the
// defaults. Relative output paths are joined to srcRoot.
func ResolveTagger(table map[string]any, srcRoot string) (*TaggerConfig, error) {
	cfg := &TaggerConfig{
		Marker:        DefaultTaggerMarker,
		Tag2PostsPath: resolvePath(srcRoot, DefaultTag2PostsPath),
		Post2TagsPath: resolvePath(srcRoot, DefaultPost2TagsPath),
		Split:         DefaultSplit,
	}

	if s, ok, err := stringKey(table, "marker"); err != nil {
		return nil, err
	} else if ok {
		cfg.Marker = s
	}
	if s, ok, err := stringKey(table, "tag2posts_path"); err != nil {
		return nil, err
	} else if ok {
		cfg.Tag2PostsPath = resolvePath(srcRoot, s)
	}
	if s, ok, err := stringKey(table, "post2tags_path"); err != nil {
		return nil, err
	} else if ok {
		cfg.Post2TagsPath = resolvePath(srcRoot, s)
	}
	if s, ok, err := stringKey(table, "split"); err != nil {
		return nil, err
	} else if ok {
		if s == "" {
			return nil, ferrors.ConfigError("split must not be empty").
				WithContext("key", "split").
				Build()
		}
		cfg.Split = s
	}

	p, err := marker.Compile(cfg.Marker, marker.GrammarTags)
	if err != nil {
		return nil, err
	}
	cfg.Pattern = p
	return cfg, nil
}

// stringKey reads key from table. ok is false when the key is absent.
func stringKey(table map[string]any, key string) (value string, ok bool, err error) {
	v, present := table[key]
	if !present {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, ferrors.ConfigError(fmt.Sprintf("%s %s is not a valid string", key, describe(v))).
			WithContext("key", key).
			Build()
	}
	return s, true, nil
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) || root == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
