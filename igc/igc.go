// Package igc parses IGC flight recorder logs into flightbook tracks.
package igc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/skypies/geo"

	fb "github.com/kampelmuehler/flightbook-generator"
)

// IGC: https://xp-soaring.github.io/igc_file_format/igc_format_2008.html
// We only decode what a flightbook needs: the date and glider headers, and
// the B (fix) records. Everything else (task declarations, extensions,
// signatures) passes through unparsed.

// {{{ Header{}

// Header is the metadata an IGC file declares up front.
type Header struct {
	Date       time.Time // UTC day the recording started, from the HFDTE record
	GliderType string
	GliderID   string
	Pilot      string

	// Warnings lists lines that were skipped and why. The caller decides
	// whether anyone needs to hear about them.
	Warnings   []string
}

func (h Header)String() string {
	return fmt.Sprintf("%s %q (%s) pilot=%q, %d warnings",
		h.Date.Format("2006.01.02"), h.GliderType, h.GliderID, h.Pilot, len(h.Warnings))
}

// }}}
// {{{ Trace{}

// A Trace is one parsed IGC file: the declared header plus the raw track,
// exactly as recorded. Feed the track through Cleaned before analyzing it.
type Trace struct {
	Header
	Track fb.Track
}

func (t *Trace)String() string {
	return fmt.Sprintf("%s, %s", t.Header, t.Track)
}

func (t *Trace)Meta(source string) fb.FlightMeta {
	return fb.FlightMeta{
		GliderType: t.GliderType,
		GliderID:   t.GliderID,
		Pilot:      t.Pilot,
		Source:     source,
	}
}

// }}}

// {{{ lineKind / classify

// Every line gets tagged before being decoded; unknown kinds are skipped
// rather than guessed at.
type lineKind int

const(
	lineUnknown lineKind = iota
	lineHeader           // H records (HFDTE, HFGTY, ...)
	lineFix              // B records
)

func classify(line string) lineKind {
	if line == "" { return lineUnknown }
	switch line[0] {
	case 'B': return lineFix
	case 'H': return lineHeader
	}
	return lineUnknown
}

// }}}

// {{{ Parse

// A timestamp regression has to be this big before it reads as the clock
// wrapping at midnight rather than ordinary GPS jitter.
const rolloverWindow = 12 * time.Hour

// Parse decodes one IGC file. Unparsable fix lines are skipped (and noted in
// Header.Warnings); a file with no date header or no usable fixes at all is
// malformed and gets an error instead of a Trace.
func Parse(r io.Reader) (*Trace, error) {
	trace := &Trace{Track: fb.Track{}}

	day := time.Time{}
	prev := time.Time{} // previous fix time, for midnight rollover
	lineno := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), " \r")

		switch classify(line) {
		case lineHeader:
			if d,ok := parseDateHeader(line); ok {
				day = d
				if trace.Date.IsZero() { trace.Date = d }
			} else {
				trace.parseHeader(line)
			}

		case lineFix:
			if day.IsZero() {
				trace.warnf("line %d: fix before any date header", lineno)
				continue
			}
			f,err := parseFix(line, day)
			if err != nil {
				trace.warnf("line %d: %v", lineno, err)
				continue
			}
			// A fix much earlier in the day than its predecessor means
			// the recording ran through UTC midnight. Small backwards
			// steps are GPS time jitter, not wraparound; those pass
			// through untouched for the cleaner to drop.
			if !prev.IsZero() && prev.Sub(f.TimestampUTC) > rolloverWindow {
				day = day.AddDate(0, 0, 1)
				f.TimestampUTC = f.TimestampUTC.AddDate(0, 0, 1)
			}
			prev = f.TimestampUTC
			trace.Track = append(trace.Track, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	if trace.Date.IsZero() {
		return nil, fmt.Errorf("%w: %w", fb.ErrMalformedTrace, fb.ErrNoDate)
	}
	if len(trace.Track) == 0 {
		return nil, fmt.Errorf("%w: %w", fb.ErrMalformedTrace, fb.ErrNoFixes)
	}

	return trace, nil
}

func (t *Trace)warnf(format string, args ...interface{}) {
	t.Warnings = append(t.Warnings, fmt.Sprintf(format, args...))
}

// }}}
// {{{ parseDateHeader

// The date header comes as HFDTE280723, or in the newer flavor
// HFDTEDATE:280723,01. Two-digit years pivot at 90 (IGC recorders predate
// 2000).
func parseDateHeader(line string) (time.Time, bool) {
	if len(line) < 5 || line[2:5] != "DTE" { return time.Time{}, false }

	digits := line[5:]
	if idx := strings.IndexByte(digits, ':'); idx >= 0 {
		digits = digits[idx+1:]
	}
	if idx := strings.IndexByte(digits, ','); idx >= 0 {
		digits = digits[:idx]
	}
	digits = strings.TrimSpace(digits)
	if len(digits) != 6 { return time.Time{}, false }

	dd,err1 := strconv.Atoi(digits[0:2])
	mm,err2 := strconv.Atoi(digits[2:4])
	yy,err3 := strconv.Atoi(digits[4:6])
	if err1 != nil || err2 != nil || err3 != nil { return time.Time{}, false }

	year := 2000 + yy
	if yy >= 90 { year = 1900 + yy }

	d := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if d.Day() != dd || int(d.Month()) != mm { return time.Time{}, false }
	return d, true
}

// }}}
// {{{ t.parseHeader

// Glider type, glider ID and pilot name. The source letter (F for flight
// recorder, O/P for observer/pilot entries) doesn't matter to us, so we key
// on the three-letter subtype. Values follow the first colon.
func (t *Trace)parseHeader(line string) {
	if len(line) < 5 { return }

	val := ""
	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		val = strings.TrimSpace(line[idx+1:])
	}
	if val == "" { return }

	switch line[2:5] {
	case "GTY": t.GliderType = val
	case "GID": t.GliderID = val
	case "PLT": t.Pilot = val
	}
}

// }}}
// {{{ parseFix

// A B record is fixed-width:
//   B HHMMSS DDMMmmmN DDDMMmmmE V PPPPP GGGGG ...
//   0 1      7        15        24 25    30
// with latitude/longitude in degrees and thousandths of minutes, and the two
// altitudes in meters. Trailing recorder extensions are ignored.
func parseFix(line string, day time.Time) (fb.Fix, error) {
	f := fb.Fix{}
	if len(line) < 35 {
		return f, fmt.Errorf("short B record (%d chars)", len(line))
	}

	hh,err1 := field(line, 1, 3, "hour")
	mi,err2 := field(line, 3, 5, "minute")
	ss,err3 := field(line, 5, 7, "second")
	if err := firstErr(err1, err2, err3); err != nil { return f, err }
	if hh > 23 || mi > 59 || ss > 59 {
		return f, fmt.Errorf("bad time %02d:%02d:%02d", hh, mi, ss)
	}
	f.TimestampUTC = time.Date(day.Year(), day.Month(), day.Day(), hh, mi, ss, 0, time.UTC)

	lat,err := parseAngle(line[7:14], line[14], 'N', 'S', 90.0)
	if err != nil { return f, err }
	long,err := parseAngle(line[15:23], line[23], 'E', 'W', 180.0)
	if err != nil { return f, err }
	f.Latlong = geo.Latlong{Lat: lat, Long: long}

	switch line[24] {
	case 'A', 'V': f.Validity = line[24]
	default:
		return f, fmt.Errorf("bad validity %q", line[24])
	}

	palt,err1 := field(line, 25, 30, "pressure altitude")
	galt,err2 := field(line, 30, 35, "GNSS altitude")
	if err := firstErr(err1, err2); err != nil { return f, err }
	f.PressureAlt, f.GNSSAlt = float64(palt), float64(galt)

	return f, nil
}

// parseAngle decodes [D]DDMMmmm plus a hemisphere letter. The degree part is
// whatever precedes the last five digits (two for latitude, three for
// longitude).
func parseAngle(digits string, hemi byte, pos, neg byte, limit float64) (float64, error) {
	n := len(digits)
	deg,err1 := strconv.Atoi(digits[:n-5])
	min,err2 := strconv.Atoi(digits[n-5 : n-3])
	thou,err3 := strconv.Atoi(digits[n-3:])
	if err := firstErr(err1, err2, err3); err != nil {
		return 0, fmt.Errorf("bad angle %q", digits)
	}

	angle := float64(deg) + (float64(min)+float64(thou)/1000.0)/60.0
	switch hemi {
	case pos:
	case neg: angle = -angle
	default:
		return 0, fmt.Errorf("bad hemisphere %q", hemi)
	}
	if angle < -limit || angle > limit {
		return 0, fmt.Errorf("angle %.4f out of range", angle)
	}
	return angle, nil
}

func field(line string, lo, hi int, what string) (int, error) {
	v,err := strconv.Atoi(strings.TrimSpace(line[lo:hi]))
	if err != nil { return 0, fmt.Errorf("bad %s %q", what, line[lo:hi]) }
	return v, nil
}

func firstErr(errs ...error) error {
	for _,err := range errs {
		if err != nil { return err }
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
