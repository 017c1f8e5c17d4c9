package driver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hilite/internal/diag"
	"hilite/internal/langdef"
	"hilite/internal/lexer"
	"hilite/internal/observ"
	"hilite/internal/source"
	"hilite/internal/syntax"
	"hilite/internal/trace"
)

// Options configures a decoration run.
type Options struct {
	// Registry resolves languages; nil means the built-ins.
	Registry *langdef.Registry
	// Language forces a language by name or alias instead of the extension.
	Language       string
	MaxDiagnostics int
	// Jobs limits parallel workers; <= 0 means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Load     source.LoadOptions
	Progress ProgressSink
	Timer    *observ.Timer
}

// Result is the decoration of one file.
type Result struct {
	Path     string
	FileID   source.FileID
	File     *source.File // nil when the file failed to load
	Language string
	Unit     syntax.Unit
	Bag      *diag.Bag
	Cached   bool
	Elapsed  time.Duration
}

func (o *Options) registry() *langdef.Registry {
	if o.Registry == nil {
		o.Registry = langdef.Builtins()
	}
	return o.Registry
}

func (o *Options) resolve(path string) (*langdef.Definition, error) {
	if o.Language != "" {
		return o.registry().Lookup(o.Language)
	}
	return o.registry().ForPath(path)
}

// Decorate loads and decorates a single file. Unlike DecorateFiles it fails
// fast: an unknown language or an unreadable file is returned as an error.
func Decorate(ctx context.Context, path string, opts Options) (*source.FileSet, *Result, error) {
	def, err := opts.resolve(path)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	fileID, err := fileSet.LoadWith(path, opts.Load)
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return fileSet, nil, err
	}
	res := decorateFile(ctx, path, fileSet.Get(fileID), def, &opts)
	return fileSet, res, nil
}

// DecorateDir decorates every file under dir whose extension maps to a
// registered language. Hidden directories are skipped.
func DecorateDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "decorate-dir", trace.ParentID(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	files, err := ListSourceFiles(dir, &opts)
	if err != nil {
		return nil, nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	results, err := DecorateFiles(ctx, fileSet, files, opts)
	return fileSet, results, err
}

// ListSourceFiles возвращает отсортированный список файлов с известными расширениями,
// которые DecorateDir передал бы в DecorateFiles
func ListSourceFiles(dir string, opts *Options) ([]string, error) {
	reg := opts.registry()
	var only *langdef.Definition
	if opts.Language != "" {
		def, err := reg.Lookup(opts.Language)
		if err != nil {
			return nil, err
		}
		only = def
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext == "" {
			return nil
		}
		if only != nil {
			if only.HasExtension(ext) {
				files = append(files, path)
			}
			return nil
		}
		if _, err := reg.ForExtension(ext); err == nil {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DecorateFiles decorates paths in parallel into fileSet. Per-file failures
// become diagnostics in that file's Bag; the returned error is only set when
// ctx is cancelled. Results keep the order of paths.
func DecorateFiles(ctx context.Context, fileSet *source.FileSet, paths []string, opts Options) ([]Result, error) {
	opts.registry()
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	// FileSet не потокобезопасен на запись: загружаем всё заранее
	type prepared struct {
		id   source.FileID
		file *source.File
		def  *langdef.Definition
		err  error
		code diag.Code
	}
	prep := make([]prepared, len(paths))
	for i, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		def, err := opts.resolve(path)
		if err != nil {
			prep[i] = prepared{err: err, code: diag.PrjUnknownLanguage}
			continue
		}
		fileID, err := fileSet.LoadWith(path, opts.Load)
		if err != nil {
			prep[i] = prepared{err: err, code: diag.IOLoadFileError}
			continue
		}
		prep[i] = prepared{id: fileID, def: def}
	}
	// Get только после всех Load: files растёт через append
	for i := range prep {
		if prep[i].err == nil {
			prep[i].file = fileSet.Get(prep[i].id)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			p := prep[i]
			if p.err != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				msg := "failed to load file: " + p.err.Error()
				if errors.Is(p.err, langdef.ErrUnknownLanguage) {
					msg = p.err.Error()
				}
				bag.Add(diag.NewError(p.code, source.Span{}, msg))
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: p.err})
				// индекс i уникален, мьютекс не нужен
				results[i] = Result{Path: path, Bag: bag}
				return nil
			}

			res := decorateFile(gctx, path, p.file, p.def, &opts)
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// decorateFile runs one file through the cache and the lexer.
func decorateFile(ctx context.Context, path string, file *source.File, def *langdef.Definition, opts *Options) *Result {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.ParentID(ctx))
	span.WithExtra("path", file.Path).WithExtra("lang", def.Name)
	ctx = trace.WithSpan(ctx, span)

	start := time.Now()
	res := &Result{
		Path:     path,
		FileID:   file.ID,
		File:     file,
		Language: def.Name,
		Bag:      diag.NewBag(opts.MaxDiagnostics),
	}

	key := CacheKey(file, def)
	if opts.Cache != nil {
		emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusWorking})
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			trace.Point(tracer, trace.ScopeFile, "cache-read-failed", err.Error(), span.ID())
		case hit && payload.Language == def.Name:
			res.Unit = payloadToUnit(file, &payload)
			res.Cached = true
			trace.Point(tracer, trace.ScopeFile, "cache-hit", file.Path, span.ID())
		}
	}

	if !res.Cached {
		emit(opts.Progress, Event{File: path, Stage: StageDecorate, Status: StatusWorking})
		_, pass := trace.BeginCtx(ctx, trace.ScopePass, "parse")
		res.Unit = lexer.New(def, lexer.Options{}).Parse(file)
		pass.WithExtra("nodes", strconv.Itoa(len(res.Unit.Root.Children))).End("")

		if opts.Cache != nil {
			if err := opts.Cache.Put(key, unitToPayload(def, res.Unit)); err != nil {
				trace.Point(tracer, trace.ScopeFile, "cache-write-failed", err.Error(), span.ID())
			}
		}
	}

	for _, d := range res.Unit.Diagnostics {
		res.Bag.Add(d)
	}

	res.Elapsed = time.Since(start)
	opts.Timer.Add("decorate", res.Elapsed)
	detail := "parsed"
	if res.Cached {
		detail = "cached"
	}
	span.End(detail)
	emit(opts.Progress, Event{
		File:    path,
		Stage:   StageDecorate,
		Status:  StatusDone,
		Elapsed: res.Elapsed,
		Cached:  res.Cached,
	})
	return res
}
