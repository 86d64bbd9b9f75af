package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pyrsc/internal/ast"
	"pyrsc/internal/buildpipeline"
	"pyrsc/internal/diag"
	"pyrsc/internal/parser"
	"pyrsc/internal/sema"
	"pyrsc/internal/source"
	"pyrsc/internal/symbols"
)

// DirOptions configure a directory-wide diagnose run.
type DirOptions struct {
	MaxDiagnostics int
	// Jobs caps worker parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Progress receives per-file stage events; may be nil.
	Progress buildpipeline.ProgressSink
	// Cache, when set, skips files whose content digest already has a
	// recorded outcome.
	Cache *DiskCache
}

// DirResult is the outcome for one file of a directory run.
type DirResult struct {
	Path      string // display path, relative to the walked directory
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
}

// ListSourceFiles returns all *.py files under dir, sorted for a
// deterministic run order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir diagnoses every *.py file under dir in parallel. Results
// come back in the same deterministic order as ListSourceFiles.
func DiagnoseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []DirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Preload sequentially: FileSet mutation is not concurrency-safe.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	results := make([]DirResult, len(files))
	for i, path := range files {
		results[i].Path = displayPath(dir, path)
	}
	emitAll(opts.Progress, results, buildpipeline.StageParse, buildpipeline.StatusQueued)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res := &results[i]
			res.Bag = diag.NewBag(opts.MaxDiagnostics)

			if loadErr, failed := loadErrors[path]; failed {
				res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				emitFile(opts.Progress, res.Path, buildpipeline.StageParse, buildpipeline.StatusError, loadErr, 0)
				return nil
			}

			res.FileID = fileIDs[path]
			file := fileSet.Get(res.FileID)
			diagnoseOne(opts, res, file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// diagnoseOne runs parse/resolve/check for one file, consulting the disk
// cache first and emitting progress events around each stage.
func diagnoseOne(opts DirOptions, res *DirResult, file *source.File) {
	start := time.Now()

	if opts.Cache != nil {
		var payload DiskPayload
		if hit, err := opts.Cache.Get(CacheKey(file), &payload); err == nil && hit {
			ReplayDiags(res.Bag, file.ID, payload.Diags)
			res.Bag.Sort()
			res.FromCache = true
			emitFile(opts.Progress, res.Path, buildpipeline.StageCheck, doneStatus(res.Bag), nil, time.Since(start))
			return
		}
	}

	reporter := diag.BagReporter{Bag: res.Bag}

	emitFile(opts.Progress, res.Path, buildpipeline.StageParse, buildpipeline.StatusWorking, nil, 0)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(file, builder, parser.Options{Reporter: reporter})

	emitFile(opts.Progress, res.Path, buildpipeline.StageResolve, buildpipeline.StatusWorking, nil, 0)
	syms := symbols.Resolve(builder, parsed.File, symbols.Options{Reporter: reporter})

	emitFile(opts.Progress, res.Path, buildpipeline.StageCheck, buildpipeline.StatusWorking, nil, 0)
	sema.Check(builder, parsed.File, sema.Options{Reporter: reporter, Symbols: syms})

	res.Bag.Sort()
	emitFile(opts.Progress, res.Path, buildpipeline.StageCheck, doneStatus(res.Bag), nil, time.Since(start))

	if opts.Cache != nil {
		payload := DiskPayload{
			Path:   res.Path,
			Broken: res.Bag.HasErrors(),
			Diags:  EncodeDiags(res.Bag),
		}
		// A failed write only loses the cache entry.
		_ = opts.Cache.Put(CacheKey(file), &payload)
	}
}

func doneStatus(bag *diag.Bag) buildpipeline.Status {
	if bag.HasErrors() {
		return buildpipeline.StatusError
	}
	return buildpipeline.StatusDone
}

func displayPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func emitFile(sink buildpipeline.ProgressSink, path string, stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
	buildpipeline.Emit(sink, buildpipeline.Event{
		File:    path,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: elapsed,
	})
}

func emitAll(sink buildpipeline.ProgressSink, results []DirResult, stage buildpipeline.Stage, status buildpipeline.Status) {
	if sink == nil {
		return
	}
	for i := range results {
		emitFile(sink, results[i].Path, stage, status, nil, 0)
	}
}
