// This package contains all the types and per-flight analysis for the
// flightbook generator. No network or filesystem imports; parsing lives in
// igc/, geocoding in geocode/, and orchestration in batch/.
package flightbook

const(
	// Placeholder used whenever a takeoff or landing site can't be named.
	// Records must never fail just because a geocoder was down.
	UnknownLocation = "Unknown Location"
)
