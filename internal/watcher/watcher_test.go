package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) ingest(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func (r *recorder) count(suffix string) int {
	n := 0
	for _, p := range r.snapshot() {
		if strings.HasSuffix(p, suffix) {
			n++
		}
	}
	return n
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func startWatcher(t *testing.T, opts Options, rec *recorder) *Watcher {
	t.Helper()
	if opts.Debounce == 0 {
		opts.Debounce = 50 * time.Millisecond
	}
	w := NewWatcher(opts, rec.ingest)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_AddRemoveDirectories(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, Options{Extensions: []string{".txt"}, Recursive: true}, &recorder{})

	if err := w.AddDirectory(dir, false); err != nil {
		t.Fatal(err)
	}
	if err := w.AddDirectory(dir, false); err != nil {
		t.Fatal(err)
	}
	dirs := w.Directories()
	if len(dirs) != 1 || filepath.Clean(dirs[0]) != filepath.Clean(dir) {
		t.Errorf("Directories() = %v", dirs)
	}

	if err := w.RemoveDirectory(dir); err != nil {
		t.Fatal(err)
	}
	if len(w.Directories()) != 0 {
		t.Errorf("after remove: %v", w.Directories())
	}
}

func TestWatcher_AddDirectory_syncExisting(t *testing.T) {
	dir := t.TempDir()
	if err := writeFile(filepath.Join(dir, "old.txt"), "already here"); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	w := startWatcher(t, Options{Extensions: []string{".txt"}, Recursive: true}, rec)
	if err := w.AddDirectory(dir, true); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return rec.count("old.txt") == 1 }) {
		t.Errorf("expected old.txt to be ingested, got %v", rec.snapshot())
	}
}

func TestWatcher_DebounceAndExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := mkdirAll(sub); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	startWatcher(t, Options{Roots: []string{dir}, Extensions: []string{".txt"}, Recursive: true, Debounce: 200 * time.Millisecond}, rec)

	fPath := filepath.Join(sub, "f.txt")
	for i := 0; i < 3; i++ {
		if err := writeFile(fPath, strings.Repeat("x", i+1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writeFile(filepath.Join(sub, "skip.bin"), "binary"); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return rec.count("f.txt") >= 1 }) {
		t.Fatalf("expected f.txt to be ingested, got %v", rec.snapshot())
	}
	time.Sleep(300 * time.Millisecond)
	if n := rec.count("f.txt"); n != 1 {
		t.Errorf("burst of writes should be ingested once, got %d", n)
	}
	if rec.count("skip.bin") != 0 {
		t.Error("skip.bin should not be ingested")
	}
}

func TestWatcher_UnchangedFileNotReingested(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := writeFile(path, "hello"); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	w := startWatcher(t, Options{Roots: []string{dir}, Extensions: []string{".txt"}, Recursive: true}, rec)
	w.SyncExistingFiles()
	w.SyncExistingFiles()
	if n := rec.count("a.txt"); n != 1 {
		t.Errorf("unchanged file ingested %d times, want 1", n)
	}

	if err := writeFile(path, "hello, changed"); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return rec.count("a.txt") == 2 }) {
		t.Errorf("changed file should be ingested again, got %v", rec.snapshot())
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"/a/b.txt", []string{".txt"}, true},
		{"/a/b.TXT", []string{".txt"}, true},
		{"/a/b.pdf", []string{"pdf"}, true},
		{"/a/b.md", []string{".txt"}, false},
		{"/a/b", nil, true},
		{"/a/b", []string{}, true},
	}
	for _, tt := range tests {
		got := matchExtension(tt.path, tt.extensions)
		if got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}

func TestInDir(t *testing.T) {
	tests := []struct {
		dir  string
		path string
		want bool
	}{
		{"/tmp/a", "/tmp/a", true},
		{"/tmp/a", "/tmp/a/b.txt", true},
		{"/tmp/a", "/tmp/b", false},
		{"/tmp/a", "/tmp/a/../b", false},
	}
	for _, tt := range tests {
		got := inDir(tt.dir, tt.path)
		if got != tt.want {
			t.Errorf("inDir(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func TestWatcher_SyncExistingFiles(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	if err := mkdirAll(nested); err != nil {
		t.Fatal(err)
	}
	_ = writeFile(filepath.Join(dir, "a.txt"), "hello")
	_ = writeFile(filepath.Join(dir, "ignore.xyz"), "x")
	_ = writeFile(filepath.Join(nested, "b.txt"), "nested")

	rec := &recorder{}
	w := startWatcher(t, Options{Roots: []string{dir}, Extensions: []string{".txt"}, Recursive: false}, rec)
	w.SyncExistingFiles()

	got := rec.snapshot()
	if len(got) != 1 || !strings.HasSuffix(got[0], "a.txt") {
		t.Errorf("non-recursive sync should ingest only a.txt, got %v", got)
	}
}

func TestWatcher_Start_createsMissingRootDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "inbox", "docs")
	startWatcher(t, Options{Roots: []string{root}, Extensions: []string{".txt"}, Recursive: true}, &recorder{})
	if _, err := os.Stat(root); err != nil {
		t.Errorf("root directory should exist after Start: %v", err)
	}
}

func TestWatcher_NewDirectory(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, Options{Roots: []string{dir}, Extensions: []string{".txt", ".md"}, Recursive: true}, rec)

	nested := filepath.Join(dir, "level1", "level2")
	if err := mkdirAll(nested); err != nil {
		t.Fatal(err)
	}
	_ = writeFile(filepath.Join(dir, "level1", "doc1.txt"), "hello")
	_ = writeFile(filepath.Join(nested, "doc2.md"), "world")
	_ = writeFile(filepath.Join(nested, "ignore.xyz"), "skip")

	ok := waitFor(t, func() bool { return rec.count("doc1.txt") >= 1 && rec.count("doc2.md") >= 1 })
	if !ok {
		t.Errorf("expected doc1.txt and doc2.md to be ingested, got %v", rec.snapshot())
	}
	if rec.count("ignore.xyz") != 0 {
		t.Error("ignore.xyz should not be ingested")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(Options{Roots: []string{t.TempDir()}}, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
	if err := w.AddDirectory(t.TempDir(), false); err != nil {
		t.Errorf("AddDirectory after Stop: %v", err)
	}
}

func mkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
