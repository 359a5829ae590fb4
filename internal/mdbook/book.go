package mdbook

// Book is the decoded book tree.
type Book struct {
	raw map[string]any
}

// Chapter is a view onto one chapter node of the book tree.
type Chapter struct {
	node map[string]any
}

// Name returns the chapter title as shown in the summary.
func (c *Chapter) Name() string { return stringField(c.node, "name") }

// Path returns the chapter source path relative to the source root.
func (c *Chapter) Path() string { return stringField(c.node, "path") }

// Content returns the chapter Markdown.
func (c *Chapter) Content() string { return stringField(c.node, "content") }

// SetContent replaces the chapter Markdown in the book tree.
func (c *Chapter) SetContent(s string) { c.node["content"] = s }

// Chapters calls fn for every chapter with a source file, depth-first in
// summary order. Separators, part titles and draft chapters are skipped.
func (b *Book) Chapters(fn func(*Chapter)) {
	sections, _ := b.raw["sections"].([]any)
	walkItems(sections, fn)
}

func walkItems(items []any, fn func(*Chapter)) {
	for _, item := range items {
		wrapper, ok := item.(map[string]any)
		if !ok {
			continue
		}
		node, ok := wrapper["Chapter"].(map[string]any)
		if !ok {
			continue
		}
		if p, ok := node["path"].(string); ok && p != "" {
			fn(&Chapter{node: node})
		}
		if sub, ok := node["sub_items"].([]any); ok {
			walkItems(sub, fn)
		}
	}
}
