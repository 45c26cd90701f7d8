// Package archive holds the in-memory entry tree of a bundle archive and
// serializes it to ZIP.
//
// Entries are inserted by path segment: folders are created on demand and a
// write to an existing path replaces the previous content in place, so the
// last write wins while the serialized order stays that of first insertion.
package archive

import (
	"path"
	"strings"
)

type node struct {
	name   string
	data   []byte
	folder *Folder // nil for files
}

// Folder is a directory node of the archive tree
type Folder struct {
	children []*node
	index    map[string]*node
}

// Tree is the root of an archive
type Tree struct {
	Folder
}

// Entry is a flattened archive entry
type Entry struct {
	Path  string
	IsDir bool
	Data  []byte
}

// NewTree creates an empty archive tree
func NewTree() *Tree {
	return &Tree{}
}

func (f *Folder) lookup(name string) *node {
	if f.index == nil {
		return nil
	}
	return f.index[name]
}

func (f *Folder) insert(n *node) {
	if f.index == nil {
		f.index = make(map[string]*node)
	}
	if existing, ok := f.index[n.name]; ok {
		*existing = *n
		return
	}
	f.children = append(f.children, n)
	f.index[n.name] = n
}

// Dir returns the named sub-folder, creating it if needed.
// A name containing slashes walks (and creates) each level.
func (f *Folder) Dir(name string) *Folder {
	cur := f
	for _, seg := range splitPath(name) {
		n := cur.lookup(seg)
		if n == nil || n.folder == nil {
			n = &node{name: seg, folder: &Folder{}}
			cur.insert(n)
			n = cur.lookup(seg)
		}
		cur = n.folder
	}
	return cur
}

// File stores data under name in this folder, replacing any previous entry
func (f *Folder) File(name string, data []byte) {
	f.insert(&node{name: name, data: data})
}

// Put stores data at a slash separated path relative to this folder
func (f *Folder) Put(p string, data []byte) {
	segs := splitPath(p)
	if len(segs) == 0 {
		return
	}
	f.Dir(strings.Join(segs[:len(segs)-1], "/")).File(segs[len(segs)-1], data)
}

// Get returns the content of the file at p
func (f *Folder) Get(p string) ([]byte, bool) {
	segs := splitPath(p)
	if len(segs) == 0 {
		return nil, false
	}

	cur := f
	for _, seg := range segs[:len(segs)-1] {
		n := cur.lookup(seg)
		if n == nil || n.folder == nil {
			return nil, false
		}
		cur = n.folder
	}

	n := cur.lookup(segs[len(segs)-1])
	if n == nil || n.folder != nil {
		return nil, false
	}
	return n.data, true
}

// Entries returns every folder and file depth-first, in insertion order.
// Folder paths carry a trailing slash.
func (f *Folder) Entries() []Entry {
	var entries []Entry
	f.walk("", &entries)
	return entries
}

func (f *Folder) walk(prefix string, entries *[]Entry) {
	for _, n := range f.children {
		p := path.Join(prefix, n.name)
		if n.folder != nil {
			*entries = append(*entries, Entry{Path: p + "/", IsDir: true})
			n.folder.walk(p, entries)
			continue
		}
		*entries = append(*entries, Entry{Path: p, Data: n.data})
	}
}

// FileCount returns the number of file entries below this folder
func (f *Folder) FileCount() int {
	count := 0
	for _, e := range f.Entries() {
		if !e.IsDir {
			count++
		}
	}
	return count
}

func splitPath(p string) []string {
	var segs []string
	for _, seg := range strings.Split(strings.ReplaceAll(p, "\\", "/"), "/") {
		if seg == "" || seg == "." {
			continue
		}
		segs = append(segs, seg)
	}
	return segs
}
