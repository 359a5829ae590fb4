package aggregate

import (
	"sort"
	"strings"
)

// SplitTags turns a raw tag literal into a tag list: the literal is trimmed,
// split on delim, each segment trimmed, and empty segments dropped. It cannot
// fail; garbage yields whatever non-empty segments it contains.
func SplitTags(literal, delim string) []string {
	trimmed := strings.TrimSpace(literal)
	if trimmed == "" {
		return []string{}
	}
	parts := strings.Split(trimmed, delim)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Post identifies a document carrying a tag.
type Post struct {
	Name string
	Path string
}

// TagIndex is the bidirectional tag aggregate.
type TagIndex struct {
	tag2posts map[string][]Post
	post2tags map[string][]string
	order     []string
}

// NewTagIndex returns an empty index.
func NewTagIndex() *TagIndex {
	return &TagIndex{
		tag2posts: make(map[string][]Post),
		post2tags: make(map[string][]string),
	}
}

// Add records the tag list of one document. The path entry is written even
// when tags is empty.
func (x *TagIndex) Add(path, name string, tags []string) {
	if tags == nil {
		tags = []string{}
	}
	if _, exists := x.post2tags[path]; !exists {
		x.order = append(x.order, path)
	}
	x.post2tags[path] = tags
	for _, tag := range tags {
		x.tag2posts[tag] = append(x.tag2posts[tag], Post{Name: name, Path: path})
	}
}

// Tags returns the tag list recorded for path.
func (x *TagIndex) Tags(path string) ([]string, bool) {
	tags, ok := x.post2tags[path]
	return tags, ok
}

// Posts returns the documents recorded under tag, in traversal order.
func (x *TagIndex) Posts(tag string) []Post {
	return x.tag2posts[tag]
}

// TagNames returns every known tag, sorted.
func (x *TagIndex) TagNames() []string {
	names := make([]string, 0, len(x.tag2posts))
	for tag := range x.tag2posts {
		names = append(names, tag)
	}
	sort.Strings(names)
	return names
}

// Paths returns tagged document paths in insertion order.
func (x *TagIndex) Paths() []string {
	return append([]string(nil), x.order...)
}

// Len returns the number of documents recorded in the path -> tags index.
func (x *TagIndex) Len() int { return len(x.post2tags) }

// ExportTag2Posts returns {tag: [[name, path], ...]}.
func (x *TagIndex) ExportTag2Posts() map[string]any {
	out := make(map[string]any, len(x.tag2posts))
	for tag, posts := range x.tag2posts {
		pairs := make([]any, len(posts))
		for i, p := range posts {
			pairs[i] = []any{p.Name, p.Path}
		}
		out[tag] = pairs
	}
	return out
}

// ExportPost2Tags returns {path: [tag, ...]}.
func (x *TagIndex) ExportPost2Tags() map[string]any {
	out := make(map[string]any, len(x.post2tags))
	for path, tags := range x.post2tags {
		list := make([]any, len(tags))
		for i, tag := range tags {
			list[i] = tag
		}
		out[path] = list
	}
	return out
}
