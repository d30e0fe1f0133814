package flightbook

import (
	"fmt"
	"sort"
	"time"
)

// A Thermal is a maximal run of fixes spent in sustained climb. No circling
// geometry is checked; a long straight climb in wave counts too, which is
// fine for a logbook.
type Thermal struct {
	Entry,Exit Fix
	I,J int

	// MedianClimb is the median of the per-leg climb rates inside the run,
	// in m/s. Filled in by DetectThermals.
	MedianClimb float64
}

func (th Thermal)Duration() time.Duration {
	return th.Exit.TimestampUTC.Sub(th.Entry.TimestampUTC)
}
func (th Thermal)Gain() float64 { return th.Exit.Altitude - th.Entry.Altitude }

// MeanClimb is gain over duration, in m/s.
func (th Thermal)MeanClimb() float64 {
	d := th.Duration().Seconds()
	if d <= 0 { return 0.0 }
	return th.Gain() / d
}

func (th Thermal)String() string {
	return fmt.Sprintf("Thermal[%d:%d] +%.0fm in %s (avg %.1fm/s, median %.1fm/s)",
		th.I, th.J, th.Gain(), th.Duration(), th.MeanClimb(), th.MedianClimb)
}

// DetectThermals scans the airborne part of a cleaned track for maximal runs
// of legs climbing faster than cfg.ClimbRate. Runs shorter than
// cfg.MinThermalTime, or with no net gain, are noise rather than thermals.
// Returned thermals are non-overlapping and ordered by entry time.
func DetectThermals(t Track, fb FlightBounds, cfg Config) []Thermal {
	thermals := []Thermal{}

	i := fb.I
	for i < fb.J {
		if t[i].ClimbRateTo(t[i+1]) <= cfg.ClimbRate {
			i++
			continue
		}
		j := i + 1
		for j < fb.J && t[j].ClimbRateTo(t[j+1]) > cfg.ClimbRate { j++ }

		th := Thermal{Entry: t[i], Exit: t[j], I: i, J: j}
		if th.Duration() >= cfg.MinThermalTime && th.Gain() > 0 {
			th.MedianClimb = medianLegClimb(t, i, j)
			thermals = append(thermals, th)
		}
		i = j
	}

	return thermals
}

func medianLegClimb(t Track, i, j int) float64 {
	rates := make([]float64, 0, j-i)
	for k := i; k < j; k++ {
		rates = append(rates, t[k].ClimbRateTo(t[k+1]))
	}
	return median(rates)
}

// median of a slice; even counts average the middle two, empty yields zero.
func median(vals []float64) float64 {
	if len(vals) == 0 { return 0.0 }
	sorted := append([]float64{}, vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 { return sorted[n/2] }
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
