package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(time.Millisecond)

	idx := timer.Begin("read")
	timer.End(idx, "")
	if err := timer.Measure("format", func() error { return errors.New("boom") }); err == nil {
		t.Fatalf("expected Measure to pass the error through")
	}
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].DurationMS != 1 || report.Phases[1].DurationMS != 1 {
		t.Fatalf("unexpected durations %+v", report.Phases)
	}
	if report.Phases[1].Note != "failed" {
		t.Fatalf("expected failed note, got %q", report.Phases[1].Note)
	}
	if report.TotalMS != 2 {
		t.Fatalf("expected total 2ms, got %v", report.TotalMS)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "read", "format", "// failed", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary misses %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
}
