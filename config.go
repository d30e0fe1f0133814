package flightbook

import "time"

// Altitude sources the cleaner can be told to use.
const(
	AltSourceGPS          = "gps"           // GNSS altitude, always
	AltSourcePressure     = "pressure"      // Barometric altitude, always
	AltSourceGPSPreferred = "gps-preferred" // GNSS when the fix is 3D, else barometric
)

// Config carries every tunable the pipeline reads. Build one up front (start
// from DefaultConfig) and treat it as immutable; stages never write to it.
type Config struct {
	AltitudeSource string        // One of the AltSource* values

	TakeoffSpeed   float64       // In m/s; ground speed above this counts as moving
	TakeoffRun     int           // How many consecutive moving legs confirm a takeoff
	LandingWindow  time.Duration // How long the track must stay slow to confirm a landing

	ClimbRate      float64       // In m/s; vertical speed above this counts as climbing
	MinThermalTime time.Duration // Climbs shorter than this are noise, not thermals

	GeocodeEnabled bool
	GeocodeTimeout time.Duration // Per-attempt limit on a single lookup
	GeocodeRetries int           // Extra attempts after the first one fails
	PeakRadiusM    float64       // In meters; how far afield to look when naming a takeoff

	Workers      int  // Upper bound on concurrent per-file pipelines
	CSVSeparator rune
}

func DefaultConfig() Config {
	return Config{
		AltitudeSource: AltSourceGPSPreferred,

		TakeoffSpeed:  2.0,
		TakeoffRun:    5,
		LandingWindow: 30 * time.Second,

		ClimbRate:      0.0,
		MinThermalTime: 45 * time.Second,

		GeocodeEnabled: true,
		GeocodeTimeout: 10 * time.Second,
		GeocodeRetries: 2,
		PeakRadiusM:    2000,

		Workers:      8,
		CSVSeparator: ';',
	}
}

func (c Config)Validate() error {
	switch c.AltitudeSource {
	case AltSourceGPS, AltSourcePressure, AltSourceGPSPreferred:
	default:
		return ErrBadAltSource
	}
	return nil
}
