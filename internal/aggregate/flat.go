package aggregate

import "git.home.luguber.info/inful/mdcollect/internal/payload"

// TitleKey is the payload key that receives the document's display name.
const TitleKey = "title"

// Flat is the path -> payload aggregate.
type Flat struct {
	entries map[string]payload.Map
	order   []string
}

// NewFlat returns an empty aggregate.
func NewFlat() *Flat {
	return &Flat{entries: make(map[string]payload.Map)}
}

// Add records m under path. With addTitle set, the document name is stored
// under TitleKey, replacing any title the payload itself carried.
func (f *Flat) Add(path, name string, m payload.Map, addTitle bool) {
	if m == nil {
		m = payload.Map{}
	}
	if addTitle {
		m[TitleKey] = name
	}
	if _, exists := f.entries[path]; !exists {
		f.order = append(f.order, path)
	}
	f.entries[path] = m
}

// Get returns the payload recorded for path.
func (f *Flat) Get(path string) (payload.Map, bool) {
	m, ok := f.entries[path]
	return m, ok
}

// Len returns the number of documents recorded.
func (f *Flat) Len() int { return len(f.entries) }

// Paths returns recorded paths in insertion order.
func (f *Flat) Paths() []string {
	return append([]string(nil), f.order...)
}

// Export returns the aggregate in its persisted shape: an object keyed by
// document path whose values are the payload objects.
func (f *Flat) Export() map[string]any {
	out := make(map[string]any, len(f.entries))
	for path, m := range f.entries {
		out[path] = map[string]any(m)
	}
	return out
}
