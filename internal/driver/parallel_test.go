package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"pyrsc/internal/buildpipeline"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDiagnoseDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"good.py":       "x: int = 1\n",
		"bad.py":        "y: int = \"nope\"\n",
		"sub/nested.py": "z: bool = True\n",
		"ignored.txt":   "not source\n",
	})

	_, results, err := DiagnoseDir(context.Background(), dir, DirOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("DiagnoseDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	// ListSourceFiles sorts, so order is stable.
	if results[0].Path != "bad.py" || results[1].Path != "good.py" || results[2].Path != "sub/nested.py" {
		t.Fatalf("order = %v %v %v", results[0].Path, results[1].Path, results[2].Path)
	}
	if !results[0].Bag.HasErrors() {
		t.Error("bad.py must have errors")
	}
	if results[1].Bag.HasErrors() || results[2].Bag.HasErrors() {
		t.Error("clean files must not have errors")
	}
}

func TestDiagnoseDirEmpty(t *testing.T) {
	_, results, err := DiagnoseDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatalf("DiagnoseDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %d, want 0", len(results))
	}
}

func TestDiagnoseDirProgressEvents(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.py": "x: int = 1\n"})

	var mu sync.Mutex
	var events []buildpipeline.Event
	sink := buildpipeline.FuncSink(func(ev buildpipeline.Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	if _, _, err := DiagnoseDir(context.Background(), dir, DirOptions{Progress: sink}); err != nil {
		t.Fatal(err)
	}

	var sawQueued, sawDone bool
	for _, ev := range events {
		if ev.File != "main.py" {
			t.Errorf("event for unexpected file %q", ev.File)
		}
		if ev.Status == buildpipeline.StatusQueued {
			sawQueued = true
		}
		if ev.Stage == buildpipeline.StageCheck && ev.Status == buildpipeline.StatusDone {
			sawDone = true
		}
	}
	if !sawQueued || !sawDone {
		t.Errorf("missing lifecycle events: queued=%v done=%v (%d events)", sawQueued, sawDone, len(events))
	}
}

func TestDiagnoseDirCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.py": "flag: bool = 5\n"})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, first, err := DiagnoseDir(context.Background(), dir, DirOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first[0].FromCache {
		t.Fatal("first run must miss the cache")
	}
	if !first[0].Bag.HasErrors() {
		t.Fatal("expected a type error")
	}

	_, second, err := DiagnoseDir(context.Background(), dir, DirOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].FromCache {
		t.Fatal("second run must hit the cache")
	}
	if second[0].Bag.Len() != first[0].Bag.Len() {
		t.Fatalf("cached diags = %d, fresh = %d", second[0].Bag.Len(), first[0].Bag.Len())
	}
	got := second[0].Bag.Items()[0]
	want := first[0].Bag.Items()[0]
	if got.Code != want.Code || got.Message != want.Message {
		t.Errorf("replayed diagnostic differs: %+v vs %+v", got, want)
	}
}

func TestDiagnoseDirCancel(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.py": "x: int = 1\n", "b.py": "y: int = 2\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := DiagnoseDir(ctx, dir, DirOptions{Jobs: 1}); err == nil {
		t.Error("cancelled context should surface an error")
	}
}
