package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyProcessor  = "processor"
	KeyPath       = "path"
	KeyName       = "name"
	KeyFormat     = "format"
	KeyMarker     = "marker"
	KeyOutput     = "output"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Processor(p string) slog.Attr    { return slog.String(KeyProcessor, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Marker(m string) slog.Attr       { return slog.String(KeyMarker, m) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
