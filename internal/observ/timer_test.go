package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerRecordsPhasesInOrder(t *testing.T) {
	tm := NewTimer()
	done := tm.Track(PhaseTokenize)
	done("3 tokens")
	idx := tm.Begin(PhaseTrace)
	tm.End(idx, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(rep.Phases))
	}
	if rep.Phases[0].Name != PhaseTokenize || rep.Phases[0].Note != "3 tokens" {
		t.Errorf("first phase = %+v", rep.Phases[0])
	}
	if rep.Phases[1].Name != PhaseTrace {
		t.Errorf("second phase = %+v", rep.Phases[1])
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Errorf("total %.3f smaller than a phase", rep.TotalMS)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.Track(PhaseNormalize)("")
	s := tm.Summary()
	for _, want := range []string{"timings:", PhaseNormalize, "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.Track(PhaseTrace)("note")
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Errorf("nil timer reported %d phases", len(rep.Phases))
	}
}

func TestTimerConcurrentUse(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track(PhaseTrace)("")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 16 {
		t.Errorf("phases = %d, want 16", n)
	}
}
