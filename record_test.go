package flightbook

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/skypies/geo"
)

func TestSummarizeScenario(t *testing.T) {
	tr, fb, thermals := detectOrDie(t, tOneThermal)

	meta := FlightMeta{GliderType: "Mentor 6 light", GliderID: "D-1234", Pilot: "Moritz",
		Source: "2023-07-15-XCT-MKA-01.igc"}
	r := Summarizer{}.Summarize(context.Background(), fb, thermals, meta)

	if r.NumThermals != 1 {
		t.Errorf("record thermal count - expected %v, got %v", 1, r.NumThermals)
	}
	if r.ThermalGain != 500 {
		t.Errorf("record thermal gain - expected %v, got %v", 500, r.ThermalGain)
	}
	if r.MedianClimb != 2.0 {
		t.Errorf("record median climb - expected %v, got %v", 2.0, r.MedianClimb)
	}
	if r.TakeoffTime != tr[100].TimestampUTC {
		t.Errorf("takeoff time - expected %v, got %v", tr[100].TimestampUTC, r.TakeoffTime)
	}
	if r.Date.Format("2006-01-02") != "2023-07-15" {
		t.Errorf("record date - expected %v, got %v", "2023-07-15",
			r.Date.Format("2006-01-02"))
	}
	if r.TakeoffName != UnknownLocation || r.LandingName != UnknownLocation {
		t.Errorf("nil namers - expected %q placeholders, got %q / %q", UnknownLocation,
			r.TakeoffName, r.LandingName)
	}
	if r.Glider != "Mentor 6 light" || r.Source != "2023-07-15-XCT-MKA-01.igc" {
		t.Errorf("metadata not carried through: %s", r)
	}
}

func TestSummarizeAirtime(t *testing.T) {
	day := time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC)
	fb := FlightBounds{
		Takeoff: Fix{TimestampUTC: day.Add(12 * time.Hour)},
		Landing: Fix{TimestampUTC: day.Add(13*time.Hour + 30*time.Minute)},
		I: 0, J: 1,
	}

	r := Summarizer{}.Summarize(context.Background(), fb, nil, FlightMeta{})
	if r.AirtimeMin != 90 {
		t.Errorf("airtime - expected %v, got %v", 90, r.AirtimeMin)
	}
	if r.NumThermals != 0 || r.ThermalGain != 0 {
		t.Errorf("no thermals - expected zero count and gain, got %d / %d",
			r.NumThermals, r.ThermalGain)
	}
	if r.MedianClimb != 0.0 {
		t.Errorf("no thermals - expected zero median climb, got %v", r.MedianClimb)
	}
}

func TestSummarizeNamers(t *testing.T) {
	_, fb, thermals := detectOrDie(t, tOneThermal)

	s := Summarizer{
		TakeoffNamer: func(ctx context.Context, pos geo.Latlong) (string, error) {
			return "Gaisberg", nil
		},
		LandingNamer: func(ctx context.Context, pos geo.Latlong) (string, error) {
			return "", errors.New("geocoder down")
		},
	}

	r := s.Summarize(context.Background(), fb, thermals, FlightMeta{})
	if r.TakeoffName != "Gaisberg" {
		t.Errorf("takeoff name - expected %v, got %v", "Gaisberg", r.TakeoffName)
	}
	if r.LandingName != UnknownLocation {
		t.Errorf("failed landing lookup - expected %q, got %q", UnknownLocation,
			r.LandingName)
	}
}

func TestRecordsSortByDate(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2023, time.July, day, 0, 0, 0, 0, time.UTC) }
	records := []FlightRecord{
		{Date: d(20), TakeoffTime: d(20).Add(14 * time.Hour), Source: "c"},
		{Date: d(15), TakeoffTime: d(15).Add(11 * time.Hour), Source: "a"},
		{Date: d(20), TakeoffTime: d(20).Add(9 * time.Hour), Source: "b"},
	}

	sort.Sort(RecordsByDate(records))
	expected := []string{"a", "b", "c"}
	for i,src := range expected {
		if records[i].Source != src {
			t.Errorf("sort position %d - expected %v, got %v", i, src, records[i].Source)
		}
	}
}

func TestForBigQuery(t *testing.T) {
	r := FlightRecord{
		Date:    time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC),
		Takeoff: geo.Latlong{Lat: 47.8056, Long: 13.1092},
		Landing: geo.Latlong{Lat: 47.7997, Long: 13.0668},
	}

	row := r.ForBigQuery()
	if row.Date != "2023-07-15" {
		t.Errorf("BQ date - expected %v, got %v", "2023-07-15", row.Date)
	}
	if row.TakeoffLat != 47.8056 || row.TakeoffLong != 13.1092 {
		t.Errorf("BQ takeoff position - expected %v/%v, got %v/%v",
			47.8056, 13.1092, row.TakeoffLat, row.TakeoffLong)
	}
}
