package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hilite/internal/diagfmt"
	"hilite/internal/driver"
	"hilite/internal/langdef"
	"hilite/internal/observ"
	"hilite/internal/project"
	"hilite/internal/source"
)

const cacheAppName = "hilite"

// session - реестр языков и манифест проекта для одного вызова CLI
type session struct {
	registry *langdef.Registry
	manifest *project.Manifest // nil without hilite.toml
}

// loadSession builds the language registry for target: built-ins, then the
// nearest hilite.toml, then --langdef files.
func loadSession(cmd *cobra.Command, target string) (*session, error) {
	start := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		start = filepath.Dir(target)
	}

	s := &session{registry: langdef.Builtins()}
	manifest, ok, err := project.Load(start)
	if err != nil {
		return nil, err
	}
	if ok {
		s.manifest = manifest
		if err := manifest.Apply(s.registry); err != nil {
			return nil, fmt.Errorf("%s: %w", manifest.Path, err)
		}
	}

	extra, err := cmd.Root().PersistentFlags().GetStringSlice("langdef")
	if err != nil {
		return nil, fmt.Errorf("failed to get langdef flag: %w", err)
	}
	for _, p := range extra {
		if _, err := s.registry.LoadFile(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// driverOptions merges command flags with manifest defaults. Explicit flags win.
func (s *session) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts := driver.Options{
		Registry:       s.registry,
		MaxDiagnostics: maxDiagnostics,
	}
	if cmd.Flags().Lookup("lang") != nil {
		opts.Language, _ = cmd.Flags().GetString("lang")
	}
	if cmd.Flags().Lookup("jobs") != nil {
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	}

	if m := s.manifest; m != nil {
		cfg := m.Config.Decorate
		if !flags.Changed("max-diagnostics") && cfg.MaxDiagnostics > 0 {
			opts.MaxDiagnostics = cfg.MaxDiagnostics
		}
		if !cmd.Flags().Changed("jobs") && cfg.Jobs > 0 {
			opts.Jobs = cfg.Jobs
		}
		opts.Load = source.LoadOptions{
			NormalizeCRLF: cfg.NormalizeCRLF,
			NormalizeNFC:  cfg.NormalizeNFC,
		}
	}

	if timings {
		opts.Timer = observ.NewTimer()
	}

	noCache, _ := flags.GetBool("no-cache")
	if !noCache && (s.manifest == nil || !s.manifest.Config.Cache.Disabled) {
		cache, err := s.openCache()
		if err != nil {
			// без кэша работаем дальше, это не ошибка запуска
			if !quiet(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: decoration cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}

// openCache opens the manifest cache directory or the per-user default.
func (s *session) openCache() (*driver.DiskCache, error) {
	if s.manifest != nil {
		if dir := s.manifest.CacheDir(); dir != "" {
			return driver.OpenDiskCacheAt(dir)
		}
	}
	return driver.OpenDiskCache(cacheAppName)
}

func pathModeFlag(cmd *cobra.Command) (diagfmt.PathMode, error) {
	value, err := cmd.Root().PersistentFlags().GetString("path-mode")
	if err != nil {
		return diagfmt.PathModeAuto, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(value)
	if !ok {
		return diagfmt.PathModeAuto, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", value)
	}
	return mode, nil
}
