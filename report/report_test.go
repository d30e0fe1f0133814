package report

// go test -v github.com/kampelmuehler/flightbook-generator/report

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/skypies/geo"

	fb "github.com/kampelmuehler/flightbook-generator"
)

var(
	recJune = fb.FlightRecord{
		Date:        time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC),
		Glider:      "Mentor 6",
		TakeoffTime: time.Date(2023, 6, 2, 9, 40, 0, 0, time.UTC),
		TakeoffName: "Zwoelferhorn",
		Takeoff:     geo.Latlong{Lat: 47.7114, Long: 13.3401},
		TakeoffAlt:  1522,
		LandingTime: time.Date(2023, 6, 2, 10, 25, 0, 0, time.UTC),
		LandingName: "St. Gilgen",
		Landing:     geo.Latlong{Lat: 47.7650, Long: 13.3680},
		LandingAlt:  545,
		AirtimeMin:  45,
		NumThermals: 0,
		Source:      "20230602-zwoelferhorn.igc",
	}

	recJuly = fb.FlightRecord{
		Date:        time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		Glider:      "Sigma 11",
		TakeoffTime: time.Date(2023, 7, 15, 11, 1, 0, 0, time.UTC),
		TakeoffName: "Gaisberg",
		Takeoff:     geo.Latlong{Lat: 47.8056, Long: 13.10918},
		TakeoffAlt:  1250,
		LandingTime: time.Date(2023, 7, 15, 12, 31, 0, 0, time.UTC),
		LandingName: "Salzburg",
		Landing:     geo.Latlong{Lat: 47.79, Long: 13.05},
		LandingAlt:  430,
		AirtimeMin:  90,
		NumThermals: 2,
		ThermalGain: 1480,
		MedianClimb: 1.8,
		Source:      "20230715-gaisberg.igc",
	}
)

func TestAddRecordCounters(t *testing.T) {
	r := BlankReport()

	r.AddRecord(recJuly)
	r.AddRecord(recJune)

	flagged := recJune
	flagged.LowConfidence = true
	r.AddRecord(flagged)

	if len(r.Records) != 3 {
		t.Errorf("records - expected %v, got %v", 3, len(r.Records))
	}
	if n := r.I["[A] Flights summarized"]; n != 3 {
		t.Errorf("summarized counter - expected %v, got %v", 3, n)
	}
	if n := r.I["[B] Low-confidence takeoff/landing fallback"]; n != 1 {
		t.Errorf("low-confidence counter - expected %v, got %v", 1, n)
	}
	if n := r.I["[B] No thermals detected"]; n != 2 {
		t.Errorf("no-thermal counter - expected %v, got %v", 2, n)
	}
}

func TestSkipFile(t *testing.T) {
	r := BlankReport()

	r.SkipFile("junk.igc", fmt.Errorf("header: %w", fb.ErrMalformedTrace))
	r.SkipFile("short.igc", fmt.Errorf("cleaning: %w", fb.ErrEmptyTrack))

	if n := r.I["[C] Skipped: malformed trace"]; n != 1 {
		t.Errorf("malformed counter - expected %v, got %v", 1, n)
	}
	if n := r.I["[C] Skipped: empty track"]; n != 1 {
		t.Errorf("empty-track counter - expected %v, got %v", 1, n)
	}
	if n := r.SkippedFiles(); n != 2 {
		t.Errorf("SkippedFiles - expected %v, got %v", 2, n)
	}
	if !strings.Contains(r.Log, "junk.igc") {
		t.Errorf("skip log should name the file; got %q", r.Log)
	}
}

func TestOutputAsCSV(t *testing.T) {
	r := BlankReport()
	r.AddRecord(recJuly) // Out of date order; output must sort
	r.AddRecord(recJune)

	buf := bytes.Buffer{}
	if err := r.OutputAsCSV(&buf, ';'); err != nil {
		t.Fatalf("OutputAsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines - expected %v, got %v", 3, len(lines))
	}

	expectedHeader := strings.Join(BookHeaders, ";")
	if lines[0] != expectedHeader {
		t.Errorf("header row - expected\n%s\ngot\n%s", expectedHeader, lines[0])
	}

	expectedJuly := "2023-07-15;Sigma 11;11:01;Gaisberg;47.80560;13.10918;1250;" +
		"12:31;Salzburg;47.79000;13.05000;430;90;2;1480;1.80;20230715-gaisberg.igc"
	if !strings.HasPrefix(lines[1], "2023-06-02") {
		t.Errorf("rows not sorted by date; first row %q", lines[1])
	}
	if lines[2] != expectedJuly {
		t.Errorf("july row - expected\n%s\ngot\n%s", expectedJuly, lines[2])
	}
}

func TestOutputAsPDF(t *testing.T) {
	r := BlankReport()
	r.AddRecord(recJune)
	r.AddRecord(recJuly)
	r.FinishSummary()

	buf := bytes.Buffer{}
	if err := r.OutputAsPDF(&buf); err != nil {
		t.Fatalf("OutputAsPDF: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("output does not look like a PDF (starts %q)", buf.String()[:8])
	}
}

func TestArchiveRoundtrip(t *testing.T) {
	in := []fb.FlightRecord{recJune, recJuly}

	buf := bytes.Buffer{}
	if err := MarshalRecords(in, &buf); err != nil {
		t.Fatalf("MarshalRecords: %v", err)
	}

	out,err := UnmarshalRecords(&buf)
	if err != nil { t.Fatalf("UnmarshalRecords: %v", err) }

	if !reflect.DeepEqual(in, out) {
		t.Errorf("archive roundtrip changed the records:\n%v\n%v", in, out)
	}
}

func TestWriterRegistry(t *testing.T) {
	names := []string{}
	for _,entry := range ListWriters() {
		names = append(names, entry.Name)
	}
	if !reflect.DeepEqual(names, []string{"csv", "gob", "pdf"}) {
		t.Errorf("writer names - expected csv,gob,pdf got %v", names)
	}

	entry,err := GetWriter("csv")
	if err != nil { t.Fatalf("GetWriter: %v", err) }

	r := BlankReport()
	r.AddRecord(recJune)
	buf := bytes.Buffer{}
	if err := entry.WriterFunc(&r, &buf); err != nil {
		t.Errorf("registry csv writer: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Date;") {
		t.Errorf("registry csv writer output starts %q", buf.String()[:12])
	}

	if _,err := GetWriter("xml"); err == nil {
		t.Errorf("expected an error for an unknown format")
	}
}

func TestFinishSummaryTotals(t *testing.T) {
	r := BlankReport()
	r.AddRecord(recJune)
	r.AddRecord(recJuly)
	r.FinishSummary()

	if n := r.I["[Z] Flightbook rows"]; n != 2 {
		t.Errorf("rows counter - expected %v, got %v", 2, n)
	}
	if n := r.I["[Z] Total airtime (min)"]; n != 135 {
		t.Errorf("airtime total - expected %v, got %v", 135, n)
	}
	if n := r.I["[Z] Total thermal gain (m)"]; n != 1480 {
		t.Errorf("gain total - expected %v, got %v", 1480, n)
	}
	if !r.Records[0].Date.Before(r.Records[1].Date) {
		t.Errorf("records not date-sorted after FinishSummary")
	}
}
