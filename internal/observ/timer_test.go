package observ_test

import (
	"strings"
	"testing"

	"pyrsc/internal/observ"
)

func TestTimerReport(t *testing.T) {
	timer := observ.NewTimer()
	idx := timer.Begin(observ.PhaseParse)
	timer.End(idx, "items=3")
	timer.Track(observ.PhaseCheck, func() string { return "diags=0" })

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phase count = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != observ.PhaseParse || report.Phases[0].Note != "items=3" {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[1].Name != observ.PhaseCheck {
		t.Fatalf("second phase = %+v", report.Phases[1])
	}
	var total float64
	for _, p := range report.Phases {
		total += p.DurationMS
	}
	if report.TotalMS != total {
		t.Fatalf("total %v != phase sum %v", report.TotalMS, total)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(5, "ignored") // must not panic
	if got := len(timer.Report().Phases); got != 0 {
		t.Fatalf("phases = %d, want 0", got)
	}
}

func TestTimerSummary(t *testing.T) {
	timer := observ.NewTimer()
	timer.Track(observ.PhaseTokenize, func() string { return "tokens=12" })
	out := timer.Summary()
	if !strings.Contains(out, "tokenize") || !strings.Contains(out, "tokens=12") {
		t.Fatalf("summary missing phase line:\n%s", out)
	}
	if !strings.Contains(out, "total") {
		t.Fatalf("summary missing total:\n%s", out)
	}
}
