package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// FileWatcher re-parses query files under the workspace root as they change
// on disk and reports each new document to a callback.
type FileWatcher struct {
	workspace *Workspace
	watcher   *fsnotify.Watcher
	debounce  time.Duration
	onChange  func(*Document)
	onRemove  func(path string)
	stopCh    chan struct{}
	stopOnce  sync.Once
	log       commonlog.Logger
}

func NewFileWatcher(w *Workspace) *FileWatcher {
	return &FileWatcher{
		workspace: w,
		debounce:  200 * time.Millisecond,
		stopCh:    make(chan struct{}),
		log:       commonlog.GetLogger("xqparse.watcher"),
	}
}

// OnChange registers fn to be called after a file was parsed again.
func (fw *FileWatcher) OnChange(fn func(*Document)) {
	fw.onChange = fn
}

// OnRemove registers fn to be called after a file was deleted or renamed.
func (fw *FileWatcher) OnRemove(fn func(path string)) {
	fw.onRemove = fn
}

// Start watches every non-hidden directory under the root. Events are
// handled on a separate goroutine until ctx is done or Stop is called.
func (fw *FileWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	fw.watcher = watcher

	root := fw.workspace.RootDir()
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", root, err)
	}

	fw.log.Infof("watching %s", root)
	go fw.run(ctx)
	return nil
}

func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
	})
}

// run parses a file once no event for it arrived for the debounce interval,
// so the last of a burst of writes wins. Removals and new directories are
// handled at once.
func (fw *FileWatcher) run(ctx context.Context) {
	defer fw.watcher.Close()

	done := make(chan struct{})
	fire := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		close(done)
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fw.log.Info("stopping watcher: context done")
			return
		case <-fw.stopCh:
			fw.log.Info("stopping watcher")
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if t, ok := pending[event.Name]; ok {
					t.Stop()
					delete(pending, event.Name)
				}
				fw.handle(event)
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				fw.handle(event)
				continue
			}
			if t, ok := pending[event.Name]; ok {
				t.Reset(fw.debounce)
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(fw.debounce, func() {
				select {
				case fire <- name:
				case <-done:
				}
			})
		case name := <-fire:
			delete(pending, name)
			fw.handle(fsnotify.Event{Name: name, Op: fsnotify.Write})
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Errorf("watcher: %s", err)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if event.Has(fsnotify.Create) && !strings.HasPrefix(info.Name(), ".") {
				if err := fw.watcher.Add(event.Name); err != nil {
					fw.log.Errorf("watch %s: %s", event.Name, err)
				}
			}
			return
		}
		if !fw.workspace.IsQueryFile(event.Name) {
			return
		}
		doc, err := fw.workspace.ScanFile(event.Name)
		if err != nil {
			fw.log.Errorf("%s", err)
			return
		}
		fw.log.Debugf("reparsed %s: %d diagnostics", event.Name, len(doc.Diagnostics))
		if fw.onChange != nil {
			fw.onChange(doc)
		}
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if fw.workspace.GetFile(event.Name) == nil {
			return
		}
		fw.workspace.RemoveFile(event.Name)
		fw.log.Debugf("removed %s", event.Name)
		if fw.onRemove != nil {
			fw.onRemove(event.Name)
		}
	}
}
