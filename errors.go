package flightbook

import "errors"

// Analysis failures come in two flavors. Fatal ones (a trace we can't parse,
// a track with nothing left after cleaning) abort that one flight; the batch
// runner logs and counts them and moves on. Everything else degrades: a
// geocoder outage yields a placeholder name, an unconvincing segmentation
// yields a low-confidence record.
var (
	ErrMalformedTrace = errors.New("Trace is malformed or not an IGC file")
	ErrNoDate         = errors.New("Trace has no parseable date header")
	ErrNoFixes        = errors.New("Trace contains no position fixes")
	ErrEmptyTrack     = errors.New("Track has fewer than two usable fixes")
	ErrBadAltSource   = errors.New("Unknown altitude source in config")
	ErrNoLocation     = errors.New("No location name found")
)
