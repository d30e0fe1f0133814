// Package report accumulates per-flight results into a flightbook: an
// ordered table of records, plus counters and a climb-rate histogram that
// describe how the batch went. One Report per batch run; concurrent writers
// must hold their own lock (see the batch package) before touching it.
package report

import(
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/skypies/util/histogram"

	fb "github.com/kampelmuehler/flightbook-generator"
)

type ReportLogLevel int
const(
	DEBUG ReportLogLevel = iota
	INFO
)

type Report struct {
	Name      string
	Started   time.Time

	Records []fb.FlightRecord

	I map[string]int    // Outcome counters, keyed by stage-prefixed labels
	S map[string]string // One-off annotations (config summary etc)

	H     histogram.Histogram // Median climb rates, in cm/s
	Stats histogram.Set       // internal performance counters

	Level ReportLogLevel
	Log   string
}

func BlankReport() Report {
	return Report{
		Name:    "flightbook",
		Started: time.Now().UTC(),
		Records: []fb.FlightRecord{},
		I:       map[string]int{},
		S:       map[string]string{},
		H:       histogram.Histogram{ValMin:0, ValMax:500, NumBuckets:50},
		Stats:   histogram.NewSet(40000000), // maxval, in micros; 40s == 40000000us
		Level:   INFO,
	}
}

func (r *Report)Logger(level ReportLogLevel, s string) {
	if level < r.Level { return }
	r.Log += s
}
func (r *Report)Infof(s string, args ...interface{}) { r.Logger(INFO, fmt.Sprintf(s,args...)) }
func (r *Report)Debugf(s string, args ...interface{}) { r.Logger(DEBUG, fmt.Sprintf(s,args...)) }

// AddRecord files one summarized flight into the book.
func (r *Report)AddRecord(rec fb.FlightRecord) {
	r.Records = append(r.Records, rec)

	r.I["[A] Flights summarized"]++
	if rec.LowConfidence {
		r.I["[B] Low-confidence takeoff/landing fallback"]++
	}
	if rec.NumThermals == 0 {
		r.I["[B] No thermals detected"]++
	} else {
		r.H.Add(histogram.ScalarVal(int(rec.MedianClimb * 100.0)))
	}
}

// SkipFile records a per-file fatal error. The file stays out of the book,
// but never silently: it gets a counter and a log line.
func (r *Report)SkipFile(source string, err error) {
	reason := "unreadable"
	switch {
	case errors.Is(err, fb.ErrMalformedTrace): reason = "malformed trace"
	case errors.Is(err, fb.ErrEmptyTrack):     reason = "empty track"
	}
	r.I["[C] Skipped: "+reason]++
	r.Infof("skipped %s: %v\n", source, err)
}

func (r *Report)SkippedFiles() int {
	n := 0
	for k,v := range r.I {
		if len(k) >= 3 && k[:3] == "[C]" { n += v }
	}
	return n
}

func (r *Report)FinishSummary() {
	sort.Sort(fb.RecordsByDate(r.Records))

	airtime,gain := 0,0
	for _,rec := range r.Records {
		airtime += rec.AirtimeMin
		gain += rec.ThermalGain
	}
	r.I["[Z] Flightbook rows"] = len(r.Records)
	r.I["[Z] Total airtime (min)"] = airtime
	r.I["[Z] Total thermal gain (m)"] = gain

	r.Infof("**** Stage: all done\n")
	r.Infof("Stats (in micros):-\n%s", r.Stats)
}

func (r *Report)MetadataTable() [][]string {
	all := map[string]string{}

	for k,v := range r.I { all[k] = fmt.Sprintf("%d", v) }
	for k,v := range r.S { all[k] = v }

	if stats,valid := r.H.Stats(); valid {
		all["[Z] climb cm/s, N"] = fmt.Sprintf("%d", stats.N)
		all["[Z] climb cm/s, Mean"] = fmt.Sprintf("%.0f", stats.Mean)
		all["[Z] climb cm/s, Stddev"] = fmt.Sprintf("%.0f", stats.Stddev)
		all["[Z] climb cm/s, 50%ile"] = fmt.Sprintf("%.0d", stats.Percentile50)
		all["[Z] climb cm/s, 90%ile"] = fmt.Sprintf("%.0d", stats.Percentile90)
	}

	keys := []string{}
	for k,_ := range all { keys = append(keys, k) }
	sort.Strings(keys)

	out := [][]string{}
	for _,k := range keys {
		out = append(out, []string{k, all[k]})
	}

	return out
}

