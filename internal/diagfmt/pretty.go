package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pyrsc/internal/diag"
	"pyrsc/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks
// bag.Items() in order (call bag.Sort() first). Each diagnostic prints
//
//	<path>:<line>:<col>: <SEV> [<ID>] <Kind>: <message>
//
// followed by the source line with a ^~~~ underline under the span, then
// any notes in the same layout.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	styles := newStyles(opts.Color)
	for _, d := range bag.Items() {
		printHeading(w, fs, d, opts, styles)
		printExcerpt(w, fs, d.Primary, styles.caret)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				loc := formatLocation(fs, n.Span, opts.PathMode)
				fmt.Fprintf(w, "  %s: %s %s\n", loc, styles.note.Sprint("note"), n.Msg)
				printExcerpt(w, fs, n.Span, styles.note)
			}
		}
	}
}

type styles struct {
	err   *color.Color
	warn  *color.Color
	info  *color.Color
	note  *color.Color
	caret *color.Color
	code  *color.Color
}

func newStyles(enabled bool) styles {
	s := styles{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan),
		note:  color.New(color.FgCyan),
		caret: color.New(color.FgRed, color.Bold),
		code:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{s.err, s.warn, s.info, s.note, s.caret, s.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s styles) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return s.err
	case diag.SevWarning:
		return s.warn
	}
	return s.info
}

func printHeading(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts, s styles) {
	loc := formatLocation(fs, d.Primary, opts.PathMode)
	sev := s.severity(d.Severity).Sprint(strings.ToLower(d.Severity.String()))
	id := s.code.Sprintf("[%s]", d.Code.ID())
	fmt.Fprintf(w, "%s: %s %s %s: %s\n", loc, sev, id, d.Code.Kind(), d.Message)
}

// printExcerpt shows the first line the span touches with an underline.
func printExcerpt(w io.Writer, fs *source.FileSet, span source.Span, caret *color.Color) {
	file := fs.Get(span.File)
	if file == nil || span.End <= span.Start {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.ReplaceAll(line, "\t", " ")
	fmt.Fprintf(w, "  %4d | %s\n", start.Line, line)

	underStart := int(start.Col) - 1
	underLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underLen = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		underLen = len(line) - underStart
	}
	if underStart < 0 || underStart >= len(line) {
		return
	}
	if underStart+underLen > len(line) {
		underLen = len(line) - underStart
	}
	marker := "^"
	if underLen > 1 {
		marker += strings.Repeat("~", underLen-1)
	}
	fmt.Fprintf(w, "       | %s%s\n", strings.Repeat(" ", underStart), caret.Sprint(marker))
}

func formatLocation(fs *source.FileSet, span source.Span, mode PathMode) string {
	file := fs.Get(span.File)
	if file == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, file, mode), start.Line, start.Col)
}

func formatPath(fs *source.FileSet, file *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return file.FormatPath("absolute", "")
	case PathModeRelative:
		return file.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return file.FormatPath("basename", "")
	default:
		return file.FormatPath("auto", "")
	}
}
