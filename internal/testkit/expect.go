package testkit

import (
	"fmt"
	"sort"
	"strings"

	"pyrsc/internal/diag"
	"pyrsc/internal/source"
)

// Expectation is one marker comment in a fixture file:
//
//	x: int = "s"  # expect-error: TYP5005 cannot assign
//
// The marker binds to its own line. The text after the ID, when present,
// must appear in the diagnostic message.
type Expectation struct {
	Line     uint32
	Severity diag.Severity
	ID       string
	Substr   string
}

const (
	markErr  = "# expect-error:"
	markWarn = "# expect-warning:"
)

// ParseExpectations scans fixture content for marker comments. Lines
// without a marker contribute nothing; a line may carry one marker.
func ParseExpectations(content []byte) []Expectation {
	var out []Expectation
	for i, line := range strings.Split(string(content), "\n") {
		sev := diag.SevError
		idx := strings.Index(line, markErr)
		tail := ""
		if idx >= 0 {
			tail = line[idx+len(markErr):]
		} else if idx = strings.Index(line, markWarn); idx >= 0 {
			sev = diag.SevWarning
			tail = line[idx+len(markWarn):]
		} else {
			continue
		}

		fields := strings.Fields(tail)
		if len(fields) == 0 {
			continue
		}
		out = append(out, Expectation{
			Line:     uint32(i + 1),
			Severity: sev,
			ID:       fields[0],
			Substr:   strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tail), fields[0])),
		})
	}
	return out
}

// DiffExpectations matches every diagnostic in the bag against the
// expectations and returns one human-readable problem per mismatch:
// expected markers that never fired and diagnostics no marker covers.
func DiffExpectations(fs *source.FileSet, bag *diag.Bag, want []Expectation) []string {
	var problems []string
	matched := make([]bool, len(want))

	items := bag.Items()
	for _, d := range items {
		start, _ := fs.Resolve(d.Primary)
		found := false
		for i, exp := range want {
			if matched[i] || exp.Line != start.Line || exp.Severity != d.Severity {
				continue
			}
			if exp.ID != d.Code.ID() {
				continue
			}
			if exp.Substr != "" && !strings.Contains(d.Message, exp.Substr) {
				continue
			}
			matched[i] = true
			found = true
			break
		}
		if !found {
			problems = append(problems, fmt.Sprintf(
				"unexpected diagnostic at line %d: [%s] %s", start.Line, d.Code.ID(), d.Message))
		}
	}

	for i, exp := range want {
		if !matched[i] {
			problems = append(problems, fmt.Sprintf(
				"expected [%s] at line %d, but it was not reported", exp.ID, exp.Line))
		}
	}
	sort.Strings(problems)
	return problems
}
