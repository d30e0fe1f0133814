package flightbook

import (
	"fmt"
)

// FlightBounds marks where within a cleaned track the actual flying happened.
type FlightBounds struct {
	Takeoff,Landing Fix
	I,J int

	// LowConfidence is set when no clear takeoff/landing pattern was found
	// and we fell back to the first/last fix. The record still gets made;
	// bulk robustness beats strictness here.
	LowConfidence bool
}

func (fb FlightBounds)String() string {
	return fmt.Sprintf("Flight[%d:%d] %s - %s, alt %.0fm - %.0fm",
		fb.I, fb.J,
		fb.Takeoff.TimestampUTC.Format("15:04:05"),
		fb.Landing.TimestampUTC.Format("15:04:05"),
		fb.Takeoff.Altitude, fb.Landing.Altitude)
}

func (fb FlightBounds)Airborne() (s,e Fix) { return fb.Takeoff, fb.Landing }

// DetectBounds locates takeoff and landing in a cleaned track. Takeoff is
// the start of the earliest run of cfg.TakeoffRun consecutive legs flown
// above cfg.TakeoffSpeed; landing is the fix that ends the last such moving
// leg, provided the track then stays slow for cfg.LandingWindow. When either
// end can't be pinned down we fall back to the track's first/last fix and
// mark the result low-confidence. The returned indices always satisfy I < J.
func DetectBounds(t Track, cfg Config) FlightBounds {
	fb := FlightBounds{I: 0, J: len(t) - 1}

	moving := make([]bool, len(t)-1) // legs; moving[i] covers t[i]..t[i+1]
	for i := 0; i < len(t)-1; i++ {
		moving[i] = t[i].GroundSpeedTo(t[i+1]) > cfg.TakeoffSpeed
	}

	takeoffFound := false
	run := 0
	for i,m := range moving {
		if !m { run = 0; continue }
		run++
		if run >= cfg.TakeoffRun {
			fb.I = i - run + 1
			takeoffFound = true
			break
		}
	}

	// A landing is the last moving leg followed by a long enough quiet
	// stretch. Movement after that stretch (packing up, driving off) doesn't
	// un-land the flight.
	landingFound := false
	next := len(moving) // first moving leg after i; len(moving) means none
	for i := len(moving) - 1; i >= 0; i-- {
		if !moving[i] { continue }
		// Quiet legs between i and next cover fixes t[i+1]..t[next].
		if t[next].TimestampUTC.Sub(t[i+1].TimestampUTC) >= cfg.LandingWindow {
			fb.J = i + 1
			landingFound = true
			break
		}
		next = i
	}

	if !takeoffFound || !landingFound { fb.LowConfidence = true }

	if fb.I >= fb.J {
		// Detection crossed itself (e.g. a single burst of movement).
		// Full-track fallback keeps the takeoff-before-landing invariant.
		fb.I, fb.J = 0, len(t)-1
		fb.LowConfidence = true
	}

	fb.Takeoff, fb.Landing = t[fb.I], t[fb.J]
	return fb
}
