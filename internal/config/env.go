package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ohler55/ojg/oj"

	"git.home.luguber.info/inful/mdcollect/internal/logfields"
)

// EnvPrefix namespaces every environment variable the tool reads.
const EnvPrefix = "MDCOLLECT_"

const preprocessorEnvPrefix = EnvPrefix + "PREPROCESSOR__"

// LoadEnvFiles loads .env and .env.local from dir. Missing files are skipped
// and variables already present in the process environment are kept.
func LoadEnvFiles(dir string) error {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
	}
	return nil
}

// ApplyEnvOverrides sets preprocessor keys from variables of the form
// MDCOLLECT_PREPROCESSOR__<NAME>__<KEY>=<value>. NAME and KEY are lowercased.
// A value that decodes as JSON is stored decoded (so "false" becomes a
// boolean), anything else is stored as the raw string.
func ApplyEnvOverrides(b *Book, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, preprocessorEnvPrefix) {
			continue
		}
		proc, key, ok := strings.Cut(strings.TrimPrefix(name, preprocessorEnvPrefix), "__")
		if !ok || proc == "" || key == "" {
			continue
		}
		proc, key = strings.ToLower(proc), strings.ToLower(key)
		if b.Preprocessors == nil {
			b.Preprocessors = map[string]map[string]any{}
		}
		table := b.Preprocessors[proc]
		if table == nil {
			table = map[string]any{}
			b.Preprocessors[proc] = table
		}
		table[key] = decodeEnvValue(value)
	}
}

func decodeEnvValue(raw string) any {
	v, err := oj.ParseString(raw)
	if err != nil {
		return raw
	}
	switch v.(type) {
	case bool, string, int64, float64:
		return v
	default:
		return raw
	}
}
