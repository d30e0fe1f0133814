package flightbook

import (
	"context"
	"fmt"
	"math"

	"time"

	"github.com/skypies/geo"
)

// FlightMeta is the header metadata a recorder writes alongside its fixes.
type FlightMeta struct {
	GliderType string
	GliderID   string
	Pilot      string
	Source     string // Filename (or object name) the trace came from
}

// A FlightRecord is one row of the flightbook: everything worth remembering
// about a flight, small enough to keep thousands of them around. The Track
// can be thrown away once one of these exists.
type FlightRecord struct {
	Date       time.Time `json:"date"` // Day of the flight, per the landing timestamp
	Glider     string    `json:"glider,omitempty"`
	GliderID   string    `json:"glider_id,omitempty"`
	Pilot      string    `json:"pilot,omitempty"`

	TakeoffTime time.Time   `json:"takeoff_time"`
	TakeoffName string      `json:"takeoff_name"`
	Takeoff     geo.Latlong `json:"takeoff"`
	TakeoffAlt  float64     `json:"takeoff_alt"`

	LandingTime time.Time   `json:"landing_time"`
	LandingName string      `json:"landing_name"`
	Landing     geo.Latlong `json:"landing"`
	LandingAlt  float64     `json:"landing_alt"`

	AirtimeMin  int     `json:"airtime_min"`
	NumThermals int     `json:"num_thermals"`
	ThermalGain int     `json:"thermal_gain"` // Sum of per-thermal gains, each rounded to whole meters
	MedianClimb float64 `json:"median_climb"` // Median over per-thermal mean climb rates; zero if no thermals

	LowConfidence bool   `json:"low_confidence,omitempty"`
	Source        string `json:"source,omitempty"`
}

func (r FlightRecord)String() string {
	return fmt.Sprintf("%s %s %s-%s %s->%s %dmin %d thermals +%dm",
		r.Date.Format("2006/01/02"), r.Glider,
		r.TakeoffTime.Format("15:04"), r.LandingTime.Format("15:04"),
		r.TakeoffName, r.LandingName,
		r.AirtimeMin, r.NumThermals, r.ThermalGain)
}

// Records sort by date, then takeoff time; the order a book reads in.
type RecordsByDate []FlightRecord
func (a RecordsByDate) Len() int      { return len(a) }
func (a RecordsByDate) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a RecordsByDate) Less(i, j int) bool {
	if !a[i].Date.Equal(a[j].Date) { return a[i].Date.Before(a[j].Date) }
	return a[i].TakeoffTime.Before(a[j].TakeoffTime)
}

// LocationFunc names a position. Implementations live in the geocode
// package; the summarizer only ever sees the function.
type LocationFunc func(ctx context.Context, pos geo.Latlong) (string, error)

// Summarizer folds a flight's analysis back down into one FlightRecord.
// Either namer may be nil, in which case that location comes back as
// UnknownLocation. A namer that fails does the same; a flaky geocoder must
// never cost us the record.
type Summarizer struct {
	TakeoffNamer, LandingNamer LocationFunc
}

func (s Summarizer)Summarize(ctx context.Context, fb FlightBounds, thermals []Thermal, meta FlightMeta) FlightRecord {
	lt := fb.Landing.TimestampUTC

	r := FlightRecord{
		Date:     time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC),
		Glider:   meta.GliderType,
		GliderID: meta.GliderID,
		Pilot:    meta.Pilot,

		TakeoffTime: fb.Takeoff.TimestampUTC,
		TakeoffName: lookupName(ctx, s.TakeoffNamer, fb.Takeoff.Latlong),
		Takeoff:     fb.Takeoff.Latlong,
		TakeoffAlt:  fb.Takeoff.Altitude,

		LandingTime: lt,
		LandingName: lookupName(ctx, s.LandingNamer, fb.Landing.Latlong),
		Landing:     fb.Landing.Latlong,
		LandingAlt:  fb.Landing.Altitude,

		AirtimeMin:  int(math.Round(lt.Sub(fb.Takeoff.TimestampUTC).Minutes())),
		NumThermals: len(thermals),

		LowConfidence: fb.LowConfidence,
		Source:        meta.Source,
	}

	means := make([]float64, 0, len(thermals))
	for _,th := range thermals {
		r.ThermalGain += int(math.Round(th.Gain()))
		means = append(means, th.MeanClimb())
	}
	r.MedianClimb = median(means)

	return r
}

func lookupName(ctx context.Context, fn LocationFunc, pos geo.Latlong) string {
	if fn == nil { return UnknownLocation }
	name,err := fn(ctx, pos)
	if err != nil || name == "" { return UnknownLocation }
	return name
}
