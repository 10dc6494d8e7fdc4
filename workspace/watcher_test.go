package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/dialect"
)

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	ws := New(dir, dialect.Default())

	changed := make(chan *Document, 16)
	removed := make(chan string, 16)
	fw := NewFileWatcher(ws)
	fw.OnChange(func(doc *Document) { changed <- doc })
	fw.OnRemove(func(path string) { removed <- path })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))
	defer fw.Stop()

	path := filepath.Join(dir, "q.xq")
	require.NoError(t, os.WriteFile(path, []byte("1 +"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case doc := <-changed:
		assert.Equal(t, path, doc.Path)
		assert.NotEmpty(t, doc.Diagnostics)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event for q.xq")
	}
	assert.NotNil(t, ws.GetFile(path))
	assert.Nil(t, ws.GetFile(filepath.Join(dir, "ignored.txt")))

	require.NoError(t, os.Remove(path))
	select {
	case got := <-removed:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no remove event for q.xq")
	}
	assert.Nil(t, ws.GetFile(path))
}

func TestFileWatcherLastWriteWins(t *testing.T) {
	dir := t.TempDir()
	ws := New(dir, dialect.Default())

	changed := make(chan *Document, 16)
	fw := NewFileWatcher(ws)
	fw.OnChange(func(doc *Document) { changed <- doc })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))
	defer fw.Stop()

	path := filepath.Join(dir, "q.xq")
	require.NoError(t, os.WriteFile(path, []byte("1 +"), 0o644))
	time.Sleep(60 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("2"), 0o644))

	select {
	case doc := <-changed:
		assert.Equal(t, "2", string(doc.Content))
		assert.Empty(t, doc.Diagnostics)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event for q.xq")
	}

	time.Sleep(3 * fw.debounce)
	require.NotNil(t, ws.GetFile(path))
	assert.Equal(t, "2", string(ws.GetFile(path).Content))
	for len(changed) > 0 {
		doc := <-changed
		assert.Equal(t, "2", string(doc.Content))
	}
}

func TestFileWatcherMissingRoot(t *testing.T) {
	ws := New(filepath.Join(t.TempDir(), "missing"), dialect.Default())
	err := NewFileWatcher(ws).Start(context.Background())
	assert.Error(t, err)
}
