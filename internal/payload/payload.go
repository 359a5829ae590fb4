// Package payload parses marker literals into generic key-value maps.
//
// JSON, YAML and TOML literals all yield the same Map shape: string keys and
// JSON-compatible values (nil, bool, int64, float64, string, []any, Map, or
// time.Time for TOML offset datetimes). Non-finite floats become nil and TOML
// local dates and times become strings in their own layout. The top-level
// literal must be an object.
package payload

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// Map is the generic parse result of a payload literal.
type Map = map[string]any

// ErrNotObject is returned when a literal parses but is not an object/mapping.
var ErrNotObject = errors.New("top-level value is not an object")

// ErrMultipleDocuments is returned for YAML literals holding more than one document.
var ErrMultipleDocuments = errors.New("literal holds more than one YAML document")

// ParseError reports a literal that could not be parsed under the run's format.
// It is a per-document condition; callers log it and move on.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s payload: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse interprets literal under f.
func Parse(literal string, f Format) (Map, error) {
	var (
		m   Map
		err error
	)
	switch f {
	case FormatJSON:
		m, err = parseJSON(literal)
	case FormatYAML:
		m, err = parseYAML(literal)
	case FormatTOML:
		m, err = parseTOML(literal)
	default:
		err = fmt.Errorf("unsupported format %d", int(f))
	}
	if err != nil {
		return nil, &ParseError{Format: f, Err: err}
	}
	return m, nil
}

func parseJSON(literal string) (Map, error) {
	if strings.TrimSpace(literal) == "" {
		return nil, errors.New("empty literal")
	}
	v, err := oj.ParseString(literal)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return normalizeMap(m), nil
}

func parseYAML(literal string) (Map, error) {
	dec := yaml.NewDecoder(strings.NewReader(literal))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return Map{}, nil
		}
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return nil, ErrMultipleDocuments
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	switch vv := v.(type) {
	case nil:
		return Map{}, nil
	case map[string]any:
		return normalizeMap(vv), nil
	case map[any]any:
		return normalizeMap(stringKeys(vv)), nil
	default:
		return nil, ErrNotObject
	}
}

func parseTOML(literal string) (Map, error) {
	m := Map{}
	if _, err := toml.Decode(literal, &m); err != nil {
		return nil, err
	}
	return normalizeMap(m), nil
}

func normalizeMap(m map[string]any) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// normalize rewrites decoder-specific container types into Map and []any.
func normalize(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return normalizeMap(vv)
	case map[any]any:
		return normalizeMap(stringKeys(vv))
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = normalizeMap(item)
		}
		return out
	case int:
		return int64(vv)
	case float64:
		if math.IsInf(vv, 0) || math.IsNaN(vv) {
			return nil
		}
		return vv
	case time.Time:
		return localTime(vv)
	default:
		return v
	}
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}
	return out
}

// localTime renders TOML local dates and times without the zone the decoder
// attaches to them. Offset datetimes are returned unchanged.
func localTime(t time.Time) any {
	// Zone names of the decoder's internal LocalDate/LocalDatetime/LocalTime
	// locations, which the toml package does not export.
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	case "time-local":
		return t.Format("15:04:05.999999999")
	default:
		return t
	}
}
