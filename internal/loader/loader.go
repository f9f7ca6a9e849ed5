// Package loader fills tree nodes from the filesystem. Directories are read
// lazily, the first time their node is about to expand, and can be refreshed
// in place when their contents change on disk.
package loader

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/artpar/celltree/internal/core"
)

// Entry is one directory entry and the data carried by its node.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

func (e Entry) key() string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// ReadDir lists path with directories first, each group sorted by name.
// Dot files are skipped unless showHidden is set.
func ReadDir(path string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		entries = append(entries, Entry{
			Name:  de.Name(),
			Path:  filepath.Join(path, de.Name()),
			IsDir: de.IsDir(),
		})
	}
	slices.SortFunc(entries, compareEntries)
	return entries, nil
}

func compareEntries(a, b Entry) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Option configures a Source.
type Option func(*Source)

// WithHidden includes dot files.
func WithHidden(show bool) Option {
	return func(s *Source) { s.showHidden = show }
}

// WithFolderResource sets the cell resource used for directory nodes.
func WithFolderResource(url string) Option {
	return func(s *Source) { s.folderResource = url }
}

// WithWatcher registers every populated directory with w.
func WithWatcher(w *Watcher) Option {
	return func(s *Source) { s.watcher = w }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) { s.logger = logger }
}

// Source maps directories onto tree nodes.
type Source struct {
	showHidden     bool
	folderResource string
	watcher        *Watcher
	logger         *slog.Logger

	// populated directory nodes by path
	dirs map[string]*core.TreeNode
}

// NewSource creates a filesystem source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		dirs:   make(map[string]*core.TreeNode),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewNode creates a detached node for e. Directories become folders.
func (s *Source) NewNode(e Entry) *core.TreeNode {
	opts := []core.NodeOption{core.WithData(e), core.WithFolder(e.IsDir)}
	if e.IsDir && s.folderResource != "" {
		opts = append(opts, core.WithResource(s.folderResource))
	}
	return core.NewTreeNode(opts...)
}

// Mount makes root stand for dir and loads its entries.
func (s *Source) Mount(root *core.TreeNode, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}
	root.SetData(Entry{Name: filepath.Base(abs), Path: abs, IsDir: true})
	return s.Populate(root)
}

// Populated reports whether node's directory has been read.
func (s *Source) Populated(node *core.TreeNode) bool {
	e, ok := EntryOf(node)
	return ok && s.dirs[e.Path] == node
}

// Populate reads node's directory into child nodes once.
func (s *Source) Populate(node *core.TreeNode) error {
	e, ok := EntryOf(node)
	if !ok || !e.IsDir || s.Populated(node) {
		return nil
	}
	entries, err := ReadDir(e.Path, s.showHidden)
	if err != nil {
		return err
	}
	s.dirs[e.Path] = node
	for _, child := range entries {
		if _, err := node.AddChild(s.NewNode(child)); err != nil {
			return fmt.Errorf("failed to add %s: %w", child.Path, err)
		}
	}
	if s.watcher != nil {
		if err := s.watcher.Add(e.Path); err != nil {
			s.logger.Warn("failed to watch directory", "path", e.Path, "error", err)
		}
	}
	s.logger.Debug("directory loaded", "path", e.Path, "entries", len(entries))
	return nil
}

// WillExpand populates a directory node before it is shown.
func (s *Source) WillExpand(node *core.TreeNode, expand bool) {
	if !expand {
		return
	}
	if err := s.Populate(node); err != nil {
		s.logger.Error("failed to populate directory", "error", err)
	}
}

// Refresh brings the children of a populated directory node in line with
// disk. Unchanged children keep their nodes, and so their expanded state.
func (s *Source) Refresh(node *core.TreeNode) error {
	if !s.Populated(node) {
		return nil
	}
	e, _ := EntryOf(node)
	entries, err := ReadDir(e.Path, s.showHidden)
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(entries))
	for _, ent := range entries {
		want[ent.key()] = true
	}
	have := make(map[string]*core.TreeNode, node.NumChildren())
	for _, child := range node.Children() {
		ce, _ := EntryOf(child)
		if !want[ce.key()] {
			s.forget(child)
			node.RemoveChild(child)
			continue
		}
		have[ce.key()] = child
	}

	for i, ent := range entries {
		if child, ok := have[ent.key()]; ok {
			if node.ChildIndex(child) != i {
				if err := node.SetChildIndex(child, i); err != nil {
					return fmt.Errorf("failed to reorder %s: %w", ent.Path, err)
				}
			}
			continue
		}
		if _, err := node.AddChildAt(s.NewNode(ent), i); err != nil {
			return fmt.Errorf("failed to add %s: %w", ent.Path, err)
		}
	}
	s.logger.Debug("directory refreshed", "path", e.Path, "entries", len(entries))
	return nil
}

// RefreshPath refreshes the populated directory node for path, if any.
func (s *Source) RefreshPath(path string) error {
	node, ok := s.dirs[filepath.Clean(path)]
	if !ok {
		return nil
	}
	return s.Refresh(node)
}

// forget drops every populated directory under node.
func (s *Source) forget(node *core.TreeNode) {
	node.Walk(func(n *core.TreeNode) bool {
		e, ok := EntryOf(n)
		if ok && s.dirs[e.Path] == n {
			delete(s.dirs, e.Path)
			if s.watcher != nil {
				_ = s.watcher.Remove(e.Path)
			}
		}
		return true
	})
}

// Render shows an entry's name, with a trailing slash for directories.
func (s *Source) Render(node *core.TreeNode, cell core.Cell) {
	e, ok := EntryOf(node)
	if !ok {
		cell.SetText(fmt.Sprint(node.Data()))
		return
	}
	cell.SetText(e.key())
}

// Describe returns the entry path of node.
func (s *Source) Describe(node *core.TreeNode) string {
	if e, ok := EntryOf(node); ok {
		return e.Path
	}
	return fmt.Sprint(node.Data())
}

// EntryOf returns the entry carried by node.
func EntryOf(node *core.TreeNode) (Entry, bool) {
	if node == nil {
		return Entry{}, false
	}
	e, ok := node.Data().(Entry)
	return e, ok
}
