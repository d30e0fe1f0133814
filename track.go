package flightbook

import (
	"fmt"
	"time"
)

// A Track is a slice of Fixes. They are ordered in time, beginning to end.
type Track []Fix

func (t Track)Start() time.Time { return t[0].TimestampUTC }
func (t Track)End() time.Time { return t[len(t)-1].TimestampUTC }
func (t Track)Times() (s,e time.Time) { return t.Start(), t.End() }
func (t Track)Duration() time.Duration { return t.End().Sub(t.Start()) }

func (t Track)String() string {
	if len(t) == 0 { return "Track: no fixes" }
	str := fmt.Sprintf("Track: %d fixes, start=%s", len(t),
		t[0].TimestampUTC.Format("2006.01.02 15:04:05"))
	if len(t) > 1 {
		s,e := t[0],t[len(t)-1]
		str += fmt.Sprintf(", %s, %.1fKM", e.TimestampUTC.Sub(s.TimestampUTC),
			s.DistKM(e.Latlong))
	}
	return str
}

// Cleaned returns a copy of the track that's safe to analyze: fixes with
// duplicate or time-reversed timestamps are dropped (first occurrence wins),
// and the canonical Altitude field is filled in from the configured source.
// The result has strictly increasing timestamps.
func (t Track)Cleaned(cfg Config) (Track, error) {
	if err := cfg.Validate(); err != nil { return nil, err }

	out := make(Track, 0, len(t))
	for _,f := range t {
		if len(out) > 0 && !f.TimestampUTC.After(out[len(out)-1].TimestampUTC) {
			continue
		}
		switch cfg.AltitudeSource {
		case AltSourceGPS:      f.Altitude = f.GNSSAlt
		case AltSourcePressure: f.Altitude = f.PressureAlt
		case AltSourceGPSPreferred:
			if f.Has3DFix() {
				f.Altitude = f.GNSSAlt
			} else {
				f.Altitude = f.PressureAlt
			}
		}
		out = append(out, f)
	}

	if len(out) < 2 {
		return nil, fmt.Errorf("%d fixes cleaned down to %d: %w", len(t), len(out),
			ErrEmptyTrack)
	}
	return out, nil
}
