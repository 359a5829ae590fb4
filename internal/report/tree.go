// Package report renders run results for humans.
package report

import (
	"fmt"
	"path"

	"github.com/disiqueira/gotree/v3"

	"git.home.luguber.info/inful/mdcollect/internal/aggregate"
)

// TagTree renders every tag with the posts that carry it, tags sorted by
// name and posts in the order they were indexed.
func TagTree(idx *aggregate.TagIndex) string {
	root := gotree.New(fmt.Sprintf("tags (%d)", len(idx.TagNames())))
	for _, tag := range idx.TagNames() {
		posts := idx.Posts(tag)
		node := root.Add(fmt.Sprintf("%s (%d)", tag, len(posts)))
		for _, p := range posts {
			node.Add(fmt.Sprintf("%s [%s]", p.Name, p.Path))
		}
	}
	return root.Print()
}

// PathTree renders slash-separated document paths as a directory tree.
func PathTree(label string, paths []string) string {
	t := pathTree{root: gotree.New(label), dirs: make(map[string]gotree.Tree)}
	for _, p := range paths {
		t.dir(path.Dir(p)).Add(path.Base(p))
	}
	return t.root.Print()
}

type pathTree struct {
	root gotree.Tree
	dirs map[string]gotree.Tree
}

func (t pathTree) dir(dirPath string) gotree.Tree {
	if dirPath == "." || dirPath == "/" {
		return t.root
	}
	d := t.dirs[dirPath]
	if d == nil {
		d = t.dir(path.Dir(dirPath)).Add(path.Base(dirPath))
		t.dirs[dirPath] = d
	}
	return d
}
