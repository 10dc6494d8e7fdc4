// Package workspace keeps a set of parsed XQuery documents up to date and
// serves them to the command line checker, the file watcher and the
// language server.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

// DefaultExtensions are the file extensions treated as queries.
var DefaultExtensions = []string{".xq", ".xql", ".xqm", ".xqy", ".xquery", ".xpath"}

type Workspace struct {
	mu         sync.RWMutex
	rootDir    string
	cfg        dialect.Config
	extensions []string
	jobs       int
	progress   func(*Document)
	files      map[string]*Document
	log        commonlog.Logger
}

// Document is one parsed file. Documents are replaced, never mutated, so a
// *Document handed out by the workspace can be read without locking.
type Document struct {
	Path        string
	Content     []byte
	Tree        *parser.Node
	Diagnostics []parser.Diagnostic
}

type Option func(*Workspace)

func WithExtensions(exts ...string) Option {
	return func(w *Workspace) {
		if len(exts) > 0 {
			w.extensions = exts
		}
	}
}

// WithJobs bounds the number of files parsed at once. Zero or less uses
// the number of CPUs.
func WithJobs(n int) Option {
	return func(w *Workspace) {
		w.jobs = n
	}
}

// WithProgress calls fn from the checking goroutines each time CheckAll
// finishes a file.
func WithProgress(fn func(*Document)) Option {
	return func(w *Workspace) {
		w.progress = fn
	}
}

func New(rootDir string, cfg dialect.Config, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir:    rootDir,
		cfg:        cfg,
		extensions: DefaultExtensions,
		files:      make(map[string]*Document),
		log:        commonlog.GetLogger("xqparse.workspace"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.jobs <= 0 {
		w.jobs = runtime.NumCPU()
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Dialect() dialect.Config {
	return w.cfg
}

// IsQueryFile reports whether path has one of the workspace's extensions.
func (w *Workspace) IsQueryFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// dialectFor selects XPath for .xpath files and the workspace dialect
// otherwise.
func (w *Workspace) dialectFor(path string) dialect.Config {
	cfg := w.cfg
	if strings.EqualFold(filepath.Ext(path), ".xpath") {
		cfg.Language = dialect.XPath
	}
	return cfg
}

// Collect walks the given files and directories and returns the query files
// found, skipping hidden directories. Paths naming files are returned as is.
func (w *Workspace) Collect(paths ...string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if w.IsQueryFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return files, nil
}

// ScanAll parses every query file under the root directory.
func (w *Workspace) ScanAll(ctx context.Context) ([]*Document, error) {
	files, err := w.Collect(w.rootDir)
	if err != nil {
		return nil, err
	}
	return w.CheckAll(ctx, files)
}

// CheckAll reads and parses paths in parallel. Parses are independent, so
// the only shared state is the document map, updated as each file finishes.
// The returned documents are in the order of paths.
func (w *Workspace) CheckAll(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.jobs)
	for i, path := range paths {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			doc, err := w.parse(ctx, path, content)
			if err != nil {
				return err
			}
			w.store(doc)
			docs[i] = doc
			if w.progress != nil {
				w.progress(doc)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	w.log.Debugf("checked %d files", len(paths))
	return docs, nil
}

func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile parses content as the new text of path.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	doc, _ := w.parse(context.Background(), path, content)
	w.store(doc)
	return doc
}

func (w *Workspace) parse(ctx context.Context, path string, content []byte) (*Document, error) {
	cfg := w.dialectFor(path)
	opts := []parser.Option{
		parser.WithFile(path),
		parser.WithDialect(cfg),
		parser.WithContext(ctx),
	}
	var p *parser.Parser
	if cfg.Language == dialect.XPath {
		p = parser.ParseXPath(bytes.NewReader(content), opts...)
	} else {
		p = parser.ParseModule(bytes.NewReader(content), opts...)
	}
	tree := p.Finish()
	if tree == nil {
		return nil, fmt.Errorf("parse %s: %w", path, p.Err())
	}
	return &Document{
		Path:        path,
		Content:     content,
		Tree:        tree,
		Diagnostics: parser.Diagnostics(tree),
	}, nil
}

func (w *Workspace) store(doc *Document) {
	if doc == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[doc.Path] = doc
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns the documents sorted by path.
func (w *Workspace) Files() []*Document {
	w.mu.RLock()
	docs := make([]*Document, 0, len(w.files))
	for _, doc := range w.files {
		docs = append(docs, doc)
	}
	w.mu.RUnlock()
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

// DiagnosticCount is the total number of diagnostics across all documents.
func (w *Workspace) DiagnosticCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, doc := range w.files {
		n += len(doc.Diagnostics)
	}
	return n
}
