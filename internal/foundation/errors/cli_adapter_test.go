package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"config error", ConfigError("bad marker").Build(), 7},
		{"protocol error", ProtocolError("bad stdin").Build(), 2},
		{"filesystem error", FileSystemError("write failed").Build(), 11},
		{"internal error", InternalError("boom").Build(), 10},
		{"unclassified error", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatErrorNamesKey(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	err := ConfigError(`add_title "yes" is not a valid boolean`).
		WithContext("key", "add_title").
		Build()

	msg := adapter.FormatError(err)
	if !strings.Contains(msg, "add_title") || !strings.Contains(msg, "key=add_title") {
		t.Errorf("expected message to name the key, got %q", msg)
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(true, logger)
	var out bytes.Buffer
	adapter.out = &out

	code := adapter.Report(FileSystemError("write aggregate").WithContext("path", "tags.json").Build())
	if code != 11 {
		t.Errorf("expected exit code 11, got %d", code)
	}
	if !strings.Contains(out.String(), "write aggregate") {
		t.Errorf("expected printed message, got %q", out.String())
	}
	if !strings.Contains(logs.String(), "path=tags.json") {
		t.Errorf("expected logged context, got %q", logs.String())
	}
}
