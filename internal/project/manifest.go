package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"hilite/internal/langdef"
)

// Manifest is a decoded hilite.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of hilite.toml.
type Config struct {
	Languages  LanguagesConfig   `toml:"languages"`
	Extensions map[string]string `toml:"extensions"`
	Cache      CacheConfig       `toml:"cache"`
	Decorate   DecorateConfig    `toml:"decorate"`
}

type LanguagesConfig struct {
	// Paths - файлы определений языков, относительно корня проекта
	Paths []string `toml:"paths"`
}

type CacheConfig struct {
	Disabled bool `toml:"disabled"`
	// Dir overrides the cache location; relative paths are resolved from the root.
	Dir string `toml:"dir"`
}

type DecorateConfig struct {
	Jobs           int  `toml:"jobs"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
	NormalizeCRLF  bool `toml:"normalize_crlf"`
	NormalizeNFC   bool `toml:"normalize_nfc"`
}

// Load finds hilite.toml above startDir and decodes it. ok is false when no
// manifest exists; that is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes the manifest at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	for i, p := range cfg.Languages.Paths {
		if strings.TrimSpace(p) == "" {
			return Config{}, fmt.Errorf("%s: [languages].paths[%d] is empty", path, i)
		}
	}
	if cfg.Decorate.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [decorate].jobs must not be negative", path)
	}
	return cfg, nil
}

// LanguagePaths returns the definition files resolved against the root.
func (m *Manifest) LanguagePaths() []string {
	out := make([]string, 0, len(m.Config.Languages.Paths))
	for _, p := range m.Config.Languages.Paths {
		p = filepath.FromSlash(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// CacheDir returns the configured cache directory, or "" for the default.
func (m *Manifest) CacheDir() string {
	dir := m.Config.Cache.Dir
	if dir == "" {
		return ""
	}
	dir = filepath.FromSlash(dir)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.Root, dir)
	}
	return dir
}

// Apply loads the project's language files into reg, then installs the
// extension overrides. Every failure is reported; later entries are still
// applied.
func (m *Manifest) Apply(reg *langdef.Registry) error {
	var errs []error
	for _, p := range m.LanguagePaths() {
		if _, err := reg.LoadFile(p); err != nil {
			errs = append(errs, err)
		}
	}

	// детерминированный порядок для сообщений об ошибках
	exts := make([]string, 0, len(m.Config.Extensions))
	for ext := range m.Config.Extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		if err := reg.MapExtension(ext, m.Config.Extensions[ext]); err != nil {
			errs = append(errs, fmt.Errorf("%s: [extensions] %q: %w", m.Path, ext, err))
		}
	}
	return errors.Join(errs...)
}
