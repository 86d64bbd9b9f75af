package driver

import (
	"fmt"

	"pyrsc/internal/mir"
	"pyrsc/internal/observ"
	"pyrsc/internal/source"
)

// LowerResult extends the diagnose result with the lowered module.
// Module is nil when diagnostics prevented lowering.
type LowerResult struct {
	*Result
	Module *mir.Module
}

// Lower runs the full pipeline on a file and lowers it to IR. A nil
// Module with a nil error means the program has diagnostics; an error
// means the lowering itself misbehaved and is a bug.
func Lower(path string, opts Options) (*LowerResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return lowerFile(fs, fs.Get(fileID), opts)
}

// LowerSource lowers in-memory content, mainly for tests.
func LowerSource(name string, content []byte, opts Options) (*LowerResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return lowerFile(fs, fs.Get(fileID), opts)
}

func lowerFile(fs *source.FileSet, file *source.File, opts Options) (*LowerResult, error) {
	opts.Stage = StageCheck
	res := diagnoseFile(fs, file, opts)
	out := &LowerResult{Result: res}
	if res.HasErrors() {
		return out, nil
	}

	timer := observ.NewTimer()
	idx := timer.Begin(observ.PhaseLower)
	mod, err := mir.Lower(res.Builder, res.ASTFile, res.Symbols, res.Sema)
	if err != nil {
		return out, err
	}
	timer.End(idx, fmt.Sprintf("funcs=%d", len(mod.Funcs)))

	if err := mir.Validate(mod); err != nil {
		return out, fmt.Errorf("lowered module failed validation: %w", err)
	}
	out.Module = mod
	if opts.EnableTimings && res.Timing != nil {
		report := timer.Report()
		res.Timing.Phases = append(res.Timing.Phases, report.Phases...)
		res.Timing.TotalMS += report.TotalMS
	}
	return out, nil
}
