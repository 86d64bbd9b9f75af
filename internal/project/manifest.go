package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed pyrsc.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Check   CheckSection   `toml:"check"`
}

// PackageSection names the project and its entry file.
type PackageSection struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// CheckSection carries defaults for the check command. Flags on the
// command line take precedence.
type CheckSection struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Color          string `toml:"color"`
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// LoadManifest parses a pyrsc.toml file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if !meta.IsDefined("package", "name") || m.Package.Name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if m.Package.Entry == "" {
		m.Package.Entry = "main.py"
	}
	if m.Check.MaxDiagnostics < 0 {
		return Manifest{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	switch m.Check.Color {
	case "", "auto", "always", "never":
	default:
		return Manifest{}, fmt.Errorf("%s: [check].color must be auto, always or never", path)
	}
	return m, nil
}

// EntryPath resolves the manifest's entry file against the project root.
func (m Manifest) EntryPath(root string) string {
	if filepath.IsAbs(m.Package.Entry) {
		return m.Package.Entry
	}
	return filepath.Join(root, filepath.FromSlash(m.Package.Entry))
}

// WriteDefault creates a starter pyrsc.toml for a new project. Fails if
// the file already exists.
func WriteDefault(path, name string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	content := fmt.Sprintf("[package]\nname = %q\nentry = \"main.py\"\n\n[check]\nmax_diagnostics = 20\ncolor = \"auto\"\n", name)
	return os.WriteFile(path, []byte(content), 0o644)
}
