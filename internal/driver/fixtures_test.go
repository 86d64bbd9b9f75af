package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"pyrsc/internal/driver"
	"pyrsc/internal/testkit"
)

// TestCheckFixtures runs every fixture under testdata/check through the
// pipeline and compares the reported diagnostics against the expectation
// markers embedded in the fixture itself.
func TestCheckFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "check", "*.py"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found under testdata/check")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			res := driver.DiagnoseSource(filepath.Base(path), content, driver.Options{})
			want := testkit.ParseExpectations(content)
			for _, problem := range testkit.DiffExpectations(res.FileSet, res.Bag, want) {
				t.Error(problem)
			}
		})
	}
}
