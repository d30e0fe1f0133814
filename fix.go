package flightbook

import (
	"fmt"
	"time"

	"github.com/skypies/geo"
)

// Fix is a single GPS sample from a flight recorder.
type Fix struct {
	TimestampUTC time.Time // Always in UTC; IGC times are UTC by definition

	geo.Latlong            // Embedded type, so we can call all the geo stuff directly on fixes

	PressureAlt  float64   // Barometric altitude (ISA reference), in meters
	GNSSAlt      float64   // Satellite altitude, in meters
	Validity     byte      // 'A' means a 3D fix; 'V' means the GNSS altitude is junk

	// Altitude is the canonical altitude everything downstream uses; the
	// cleaner populates it from one of the two sources above.
	Altitude     float64
}

func (f Fix)String() string {
	return fmt.Sprintf("[%s] %s %.0fm (baro %.0fm, gnss %.0fm %c)",
		f.TimestampUTC.Format("15:04:05"), f.Latlong, f.Altitude, f.PressureAlt, f.GNSSAlt,
		f.Validity)
}

func (f Fix)Has3DFix() bool { return f.Validity == 'A' }

// GroundSpeedTo computes speed over ground between two fixes, in m/s.
// Returns zero when the fixes aren't moving forward in time.
func (f Fix)GroundSpeedTo(next Fix) float64 {
	dt := next.TimestampUTC.Sub(f.TimestampUTC).Seconds()
	if dt <= 0 { return 0.0 }
	return f.DistKM(next.Latlong) * 1000.0 / dt
}

// ClimbRateTo computes vertical velocity between two fixes, in m/s, using
// the canonical altitude. Returns zero when the fixes aren't moving forward
// in time.
func (f Fix)ClimbRateTo(next Fix) float64 {
	dt := next.TimestampUTC.Sub(f.TimestampUTC).Seconds()
	if dt <= 0 { return 0.0 }
	return (next.Altitude - f.Altitude) / dt
}
