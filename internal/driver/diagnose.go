package driver

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/lexer"
	"pyrsc/internal/observ"
	"pyrsc/internal/parser"
	"pyrsc/internal/sema"
	"pyrsc/internal/source"
	"pyrsc/internal/symbols"
	"pyrsc/internal/token"
)

// Stage selects how far the pipeline runs.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageParse    Stage = "parse"
	StageResolve  Stage = "resolve"
	StageCheck    Stage = "check"
	StageAll      Stage = "all"
)

const defaultMaxDiagnostics = 256

// Options configure one diagnose run.
type Options struct {
	Stage          Stage
	MaxDiagnostics int
	EnableTimings  bool
}

func (o *Options) normalize() {
	if o.Stage == "" || o.Stage == StageAll {
		o.Stage = StageCheck
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = defaultMaxDiagnostics
	}
}

// Result carries everything the pipeline produced for one file. Later
// fields are nil when an earlier stage stopped the run.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	ASTFile ast.FileID
	Bag     *diag.Bag
	Builder *ast.Builder
	Symbols *symbols.Result
	Sema    *sema.Result
	Timing  *observ.Report
}

// HasErrors reports whether any stage produced an error diagnostic.
func (r *Result) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Diagnose loads a file from disk and runs the pipeline up to opts.Stage.
func Diagnose(path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return diagnoseFile(fs, fs.Get(fileID), opts), nil
}

// DiagnoseSource runs the pipeline on in-memory content, mainly for tests
// and stdin input.
func DiagnoseSource(name string, content []byte, opts Options) *Result {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return diagnoseFile(fs, fs.Get(fileID), opts)
}

func diagnoseFile(fs *source.FileSet, file *source.File, opts Options) *Result {
	opts.normalize()

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer != nil && idx >= 0 {
			timer.End(idx, note)
		}
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	res := &Result{FileSet: fs, File: file, Bag: bag}

	if opts.Stage == StageTokenize {
		idx := begin(observ.PhaseTokenize)
		n := scanAll(file, reporter)
		end(idx, fmt.Sprintf("tokens=%d", n))
		finish(res, timer)
		return res
	}

	// The parser drives the lexer, so tokenize and parse are one phase.
	parseIdx := begin(observ.PhaseParse)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(file, builder, parser.Options{Reporter: reporter})
	res.Builder = builder
	res.ASTFile = parsed.File
	if timer != nil {
		fileNode := builder.Files.Get(parsed.File)
		end(parseIdx, fmt.Sprintf("items=%d stmts=%d", len(fileNode.Items), len(fileNode.Body)))
	} else {
		end(parseIdx, "")
	}
	if opts.Stage == StageParse {
		finish(res, timer)
		return res
	}

	resolveIdx := begin(observ.PhaseResolve)
	syms := symbols.Resolve(builder, parsed.File, symbols.Options{Reporter: reporter})
	res.Symbols = syms
	if timer != nil {
		end(resolveIdx, fmt.Sprintf("symbols=%d", syms.Table.Symbols.Len()))
	} else {
		end(resolveIdx, "")
	}
	if opts.Stage == StageResolve {
		finish(res, timer)
		return res
	}

	checkIdx := begin(observ.PhaseCheck)
	res.Sema = sema.Check(builder, parsed.File, sema.Options{Reporter: reporter, Symbols: syms})
	end(checkIdx, fmt.Sprintf("diags=%d", bag.Len()))

	finish(res, timer)
	return res
}

func finish(res *Result, timer *observ.Timer) {
	res.Bag.Sort()
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
}

func scanAll(file *source.File, reporter diag.Reporter) int {
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	n := 0
	for {
		tok := lx.Next()
		n++
		if tok.Kind == token.EOF {
			return n
		}
	}
}
