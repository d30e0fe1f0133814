package report

import(
	"encoding/gob"
	"io"

	fb "github.com/kampelmuehler/flightbook-generator"
)

// MarshalRecords writes a finished book to w as a gob stream, so a later
// run (or the publisher) can reload it without reparsing any traces.
func MarshalRecords(recs []fb.FlightRecord, w io.Writer) error {
	return gob.NewEncoder(w).Encode(recs)
}

func UnmarshalRecords(r io.Reader) ([]fb.FlightRecord, error) {
	recs := []fb.FlightRecord{}

	if err := gob.NewDecoder(r).Decode(&recs); err != nil {
		return nil, err
	}

	return recs, nil
}
