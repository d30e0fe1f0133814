package flightbook

import (
	"testing"
)

func cleanedOrDie(t *testing.T, tr Track) Track {
	t.Helper()
	cleaned,err := tr.Cleaned(DefaultConfig())
	if err != nil { t.Fatalf("Cleaned: %v", err) }
	return cleaned
}

func TestDetectBounds(t *testing.T) {
	// A minute of ground handling, ten minutes flying, a minute packing up.
	tr := cleanedOrDie(t, buildTrack([]stretch{
		{60, 0.0, 0.3},
		{600, 0.0, 15.0},
		{60, 0.0, 0.3},
	}))

	fb := DetectBounds(tr, DefaultConfig())
	if fb.I != 60 {
		t.Errorf("takeoff index - expected %v, got %v", 60, fb.I)
	}
	if fb.J != 660 {
		t.Errorf("landing index - expected %v, got %v", 660, fb.J)
	}
	if fb.LowConfidence {
		t.Errorf("clean flight flagged low confidence: %s", fb)
	}
}

func TestDetectBoundsIgnoresRetrieveDrive(t *testing.T) {
	// Landing out: flight, a good long wait, then a drive home. The drive
	// must not drag the landing to the end of the trace.
	tr := cleanedOrDie(t, buildTrack([]stretch{
		{30, 0.0, 0.3},
		{300, 0.0, 15.0},
		{120, 0.0, 0.3},
		{180, 0.0, 14.0},
	}))

	fb := DetectBounds(tr, DefaultConfig())
	if fb.J != 330 {
		t.Errorf("landing index - expected %v, got %v", 330, fb.J)
	}
}

func TestDetectBoundsFallbacks(t *testing.T) {
	testcases := []struct {
		descrip    string
		stretches  []stretch
		expectedI  int
		expectedJ  int
	}{
		{"never moves", []stretch{{120, 0.0, 0.3}}, 0, 120},
		{"ends still moving", []stretch{{60, 0.0, 0.3}, {300, 0.0, 15.0}}, 60, 360},
		{"one short burst", []stretch{{60, 0.0, 0.3}, {3, 0.0, 15.0}, {60, 0.0, 0.3}}, 0, 63},
	}

	for _,tc := range testcases {
		tr := cleanedOrDie(t, buildTrack(tc.stretches))
		fb := DetectBounds(tr, DefaultConfig())
		if fb.I != tc.expectedI || fb.J != tc.expectedJ {
			t.Errorf("Bounds '%s' - expected [%d:%d], got [%d:%d]", tc.descrip,
				tc.expectedI, tc.expectedJ, fb.I, fb.J)
		}
		if !fb.LowConfidence {
			t.Errorf("Bounds '%s' - expected low confidence flag", tc.descrip)
		}
		if fb.I >= fb.J {
			t.Errorf("Bounds '%s' - takeoff %d not before landing %d", tc.descrip, fb.I, fb.J)
		}
	}
}
