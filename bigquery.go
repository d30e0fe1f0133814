package flightbook

import (
	"time"
)

// RecordForBigQuery is a FlightRecord flattened out for import into
// BigQuery, for analysis over many seasons of flying. Positions become plain
// float columns, and the date matches the format of BQ's DATE() function.
type RecordForBigQuery struct {
	Date         string  `json:"date"`
	Glider       string  `json:"glider"`
	GliderID     string  `json:"glider_id"`
	Pilot        string  `json:"pilot"`

	TakeoffTime  time.Time `json:"takeoff_time"`
	TakeoffName  string    `json:"takeoff_name"`
	TakeoffLat   float64   `json:"takeoff_lat"`
	TakeoffLong  float64   `json:"takeoff_long"`
	TakeoffAlt   float64   `json:"takeoff_alt"`

	LandingTime  time.Time `json:"landing_time"`
	LandingName  string    `json:"landing_name"`
	LandingLat   float64   `json:"landing_lat"`
	LandingLong  float64   `json:"landing_long"`
	LandingAlt   float64   `json:"landing_alt"`

	AirtimeMin   int     `json:"airtime_min"`
	NumThermals  int     `json:"num_thermals"`
	ThermalGain  int     `json:"thermal_gain"`
	MedianClimb  float64 `json:"median_climb"`

	LowConfidence bool   `json:"low_confidence"`
	Source        string `json:"source"`
}

func (r FlightRecord)ForBigQuery() *RecordForBigQuery {
	return &RecordForBigQuery{
		Date:     r.Date.Format("2006-01-02"),
		Glider:   r.Glider,
		GliderID: r.GliderID,
		Pilot:    r.Pilot,

		TakeoffTime: r.TakeoffTime,
		TakeoffName: r.TakeoffName,
		TakeoffLat:  r.Takeoff.Lat,
		TakeoffLong: r.Takeoff.Long,
		TakeoffAlt:  r.TakeoffAlt,

		LandingTime: r.LandingTime,
		LandingName: r.LandingName,
		LandingLat:  r.Landing.Lat,
		LandingLong: r.Landing.Long,
		LandingAlt:  r.LandingAlt,

		AirtimeMin:  r.AirtimeMin,
		NumThermals: r.NumThermals,
		ThermalGain: r.ThermalGain,
		MedianClimb: r.MedianClimb,

		LowConfidence: r.LowConfidence,
		Source:        r.Source,
	}
}
