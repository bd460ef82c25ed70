package driver

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"coral/internal/diag"
	"coral/internal/format"
	"coral/internal/observ"
	"coral/internal/source"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	// Check leaves files untouched; Changed reports pending changes.
	Check bool
	// Stdout returns the formatted text in the results instead of writing it.
	Stdout bool
	// Diff fills FormatResult.Diff for changed files.
	Diff bool
	// Safe re-parses every output and rejects unstable results.
	Safe bool
	// Timings records per-phase timings in FormatResult.Timing.
	Timings bool
	// Jobs bounds the number of files formatted at once; zero means GOMAXPROCS.
	Jobs    int
	Options format.Options
	// Exclude skips matching paths while collecting files.
	Exclude  func(path string) bool
	Cache    *DiskCache
	Logger   *zap.Logger
	Progress ProgressSink
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path    string
	Changed bool
	// Cached is set when the result came from the disk cache.
	Cached bool
	Err    error
	// Formatted is the output of check and stdout runs; runs that write
	// files leave it nil.
	Formatted []byte
	Diff      string
	Timing    *observ.Report
	// Diagnostics holds the positioned form of Err when the input failed
	// to tokenize or parse; Files resolves its spans.
	Diagnostics *diag.Bag
	Files       *source.FileSet
}

// FormatPaths formats the given files and directories, collecting .py,
// .pyi and .xsh files from directories. Files are independent: one file's
// error lands in its own result and does not stop the others. The returned
// error is only set when the run as a whole failed.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := opts.logger()

	files, err := CollectSourceFiles(ctx, paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	log.Debug("collected source files", zap.Int("files", len(files)))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine owns its own index
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatPath(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FormatSource formats data that did not come from a file on disk, such as
// standard input. name is used in error positions and diffs. Nothing is
// written.
func FormatSource(name string, data []byte, opts FormatOptions) FormatResult {
	timer := observ.NewTimer()
	res := formatBytes(name, data, opts, timer)
	if opts.Timings {
		report := timer.Report()
		res.Timing = &report
	}
	return res
}

func formatPath(path string, opts FormatOptions) FormatResult {
	log := opts.logger().With(zap.String("path", path))
	timer := observ.NewTimer()
	started := time.Now()
	finish := func(res FormatResult) FormatResult {
		if opts.Timings {
			report := timer.Report()
			res.Timing = &report
		}
		status := StatusDone
		if res.Err != nil {
			status = StatusError
			log.Warn("format failed", zap.Error(res.Err))
		} else {
			log.Debug("formatted", zap.Bool("changed", res.Changed), zap.Bool("cached", res.Cached))
		}
		emit(opts.Progress, Event{File: path, Status: status, Err: res.Err, Changed: res.Changed, Elapsed: time.Since(started)})
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	idx := timer.Begin("read")
	data, err := os.ReadFile(path)
	timer.End(idx, "")
	if err != nil {
		return finish(FormatResult{Path: path, Err: err})
	}

	res := formatBytes(path, data, opts, timer)
	if res.Err != nil || opts.Check || opts.Stdout {
		return finish(res)
	}
	if !res.Changed {
		// write mode never hands text back
		res.Formatted = nil
		return finish(res)
	}

	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	idx = timer.Begin("write")
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, res.Formatted, mode.Perm()); err != nil {
		res.Err = err
	}
	timer.End(idx, "")
	res.Formatted = nil
	return finish(res)
}

// formatBytes runs the engine, or the cache, over one input.
func formatBytes(path string, data []byte, opts FormatOptions, timer *observ.Timer) FormatResult {
	res := FormatResult{Path: path}
	opts.Options = effectiveOptions(opts.Options)
	log := opts.logger()

	key := cacheKey(data, opts)
	var entry CacheEntry
	if ok, err := opts.Cache.Get(key, &entry); err != nil {
		log.Debug("cache read failed", zap.String("path", path), zap.Error(err))
	} else if ok {
		res.Changed, res.Cached = entry.Changed, true
		res.Formatted = entry.Formatted
		if !entry.Changed {
			res.Formatted = data
		}
		return withDiff(res, data, opts)
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	idx := timer.Begin("format")
	fs := source.NewFileSet()
	file := fs.Get(fs.AddRaw(path, data))
	out, err := format.File(file, opts.Options)
	timer.End(idx, "")
	if err != nil {
		res.Err = err
		if d, ok := format.DiagnosticOf(err); ok {
			res.Diagnostics = diag.NewBag(1)
			res.Diagnostics.Add(d)
			res.Files = fs
		}
		return res
	}

	if opts.Safe {
		emit(opts.Progress, Event{File: path, Stage: StageVerify, Status: StatusWorking})
		idx = timer.Begin("verify")
		err = Verify(file, out, opts.Options)
		timer.End(idx, "")
		if err != nil {
			res.Err = err
			return res
		}
	}

	res.Formatted = out
	res.Changed = !bytes.Equal(data, out)
	entry = CacheEntry{Changed: res.Changed}
	if res.Changed {
		entry.Formatted = out
	}
	if err := opts.Cache.Put(key, &entry); err != nil {
		log.Debug("cache write failed", zap.String("path", path), zap.Error(err))
	}
	return withDiff(res, data, opts)
}

func withDiff(res FormatResult, data []byte, opts FormatOptions) FormatResult {
	if !opts.Diff || !res.Changed {
		return res
	}
	diff, err := UnifiedDiff(res.Path, data, res.Formatted)
	if err != nil {
		res.Err = err
		return res
	}
	res.Diff = diff
	return res
}

func (o FormatOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
