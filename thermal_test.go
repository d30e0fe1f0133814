package flightbook

import (
	"testing"
	"time"
)

var(
	// One clean thermal: level ground to fix 100, then 500m gained over
	// 250s, then a long glide back down and a landing.
	tOneThermal = []stretch{
		{100, 0.0, 0.3},
		{250, 2.0, 12.0},
		{200, -2.5, 12.0},
		{60, 0.0, 0.3},
	}

	// Two honest thermals, one 20s blip that shouldn't count.
	tTwoThermals = []stretch{
		{60, 0.0, 0.3},
		{120, 1.5, 12.0},
		{180, -1.0, 12.0},
		{100, 3.0, 12.0},
		{150, -1.2, 12.0},
		{20, 2.0, 12.0},
		{100, -2.0, 12.0},
		{60, 0.0, 0.3},
	}
)

func detectOrDie(t *testing.T, stretches []stretch) (Track, FlightBounds, []Thermal) {
	t.Helper()
	tr := cleanedOrDie(t, buildTrack(stretches))
	fb := DetectBounds(tr, DefaultConfig())
	return tr, fb, DetectThermals(tr, fb, DefaultConfig())
}

func TestDetectThermalsSingle(t *testing.T) {
	_, _, thermals := detectOrDie(t, tOneThermal)

	if len(thermals) != 1 {
		t.Fatalf("thermal count - expected %v, got %v", 1, len(thermals))
	}
	th := thermals[0]
	if th.I != 100 {
		t.Errorf("thermal entry index - expected %v, got %v", 100, th.I)
	}
	if th.Gain() != 500.0 {
		t.Errorf("thermal gain - expected %v, got %v", 500.0, th.Gain())
	}
	if th.Duration() != 250*time.Second {
		t.Errorf("thermal duration - expected %v, got %v", 250*time.Second, th.Duration())
	}
	if th.MeanClimb() != 2.0 {
		t.Errorf("thermal mean climb - expected %v, got %v", 2.0, th.MeanClimb())
	}
	if th.MedianClimb != 2.0 {
		t.Errorf("thermal median climb - expected %v, got %v", 2.0, th.MedianClimb)
	}
}

func TestDetectThermalsFiltersNoise(t *testing.T) {
	_, _, thermals := detectOrDie(t, tTwoThermals)

	if len(thermals) != 2 {
		t.Fatalf("thermal count - expected %v, got %v (20s blip should be dropped)",
			2, len(thermals))
	}
	if g := thermals[0].Gain(); g != 180.0 {
		t.Errorf("first thermal gain - expected %v, got %v", 180.0, g)
	}
	if g := thermals[1].Gain(); g != 300.0 {
		t.Errorf("second thermal gain - expected %v, got %v", 300.0, g)
	}
}

func TestThermalInvariants(t *testing.T) {
	cfg := DefaultConfig()
	for _,stretches := range [][]stretch{tOneThermal, tTwoThermals} {
		_, _, thermals := detectOrDie(t, stretches)
		lastJ := -1
		for i,th := range thermals {
			if th.Gain() <= 0 {
				t.Errorf("thermal %d has gain %v, expected > 0", i, th.Gain())
			}
			if th.Duration() < cfg.MinThermalTime {
				t.Errorf("thermal %d lasted %v, expected >= %v", i, th.Duration(),
					cfg.MinThermalTime)
			}
			if th.I <= lastJ {
				t.Errorf("thermal %d overlaps its predecessor (I=%d, prev J=%d)",
					i, th.I, lastJ)
			}
			lastJ = th.J
		}
	}
}

func TestMedian(t *testing.T) {
	testcases := []struct {
		vals     []float64
		expected float64
	}{
		{[]float64{}, 0.0},
		{[]float64{3.0}, 3.0},
		{[]float64{1.0, 2.0, 3.0, 4.0}, 2.5},
		{[]float64{1.0, 2.0, 3.0}, 2.0},
		{[]float64{4.0, 1.0, 3.0, 2.0}, 2.5}, // order shouldn't matter
	}

	for _,tc := range testcases {
		if actual := median(tc.vals); actual != tc.expected {
			t.Errorf("median(%v) - expected %v, got %v", tc.vals, tc.expected, actual)
		}
	}
}
