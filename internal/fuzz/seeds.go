package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB cap for corpus entries

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

// addTestdataSeeds walks the repository testdata tree and adds every *.py
// file it finds. Missing testdata is fine; the built-in seeds below still
// give the fuzzer a usable starting corpus.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addLanguageSeeds seeds snippets covering every statement form plus the
// layout edge cases the lexer synthesizes tokens for.
func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"x: int = 1\n",
		"def add(a: int, b: int) -> int:\n    return a + b\n",
		"def main() -> None:\n    pass\n",
		"if x > 0:\n    y = 1\nelse:\n    y = 2\n",
		"while n > 0:\n    n = n - 1\n",
		"for i in range(10):\n    print(i)\n",
		"xs: list[int] = [1, 2, 3]\nxs[0] = len(xs)\n",
		"flag: bool = True and not False\n",
		// layout edge cases
		"def f() -> None:\n        pass\n",
		"if True:\n    if True:\n        pass\n    pass\npass\n",
		"x = (1 +\n     2)\n",
		"xs = [\n    1,\n    2,\n]\n",
		"\tpass\n",
		"if True:\n   pass\n  pass\n", // dedent between known levels
		"# just a comment\n",
		"x = \"unterminated\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
