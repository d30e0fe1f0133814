package report

import(
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	fb "github.com/kampelmuehler/flightbook-generator"
)

// BookHeaders is the flightbook column order. The trailing IGC File column
// is informational; everything before it is the record proper.
var BookHeaders = []string{
	"Date",
	"Glider",
	"Takeoff Time (UTC)",
	"Takeoff Location",
	"Takeoff lat",
	"Takeoff lon",
	"GPS Altitude Takeoff (m)",
	"Landing Time (UTC)",
	"Landing Location",
	"Landing lat",
	"Landing lon",
	"GPS Altitude Landing (m)",
	"Airtime (min)",
	"Number of thermals",
	"Thermal gain (m)",
	"Median thermal velocity (m/s)",
	"IGC File",
}

func BookRow(rec fb.FlightRecord) []string {
	return []string{
		rec.Date.Format("2006-01-02"),
		rec.Glider,
		rec.TakeoffTime.Format("15:04"),
		rec.TakeoffName,
		fmt.Sprintf("%.5f", rec.Takeoff.Lat),
		fmt.Sprintf("%.5f", rec.Takeoff.Long),
		fmt.Sprintf("%.0f", rec.TakeoffAlt),
		rec.LandingTime.Format("15:04"),
		rec.LandingName,
		fmt.Sprintf("%.5f", rec.Landing.Lat),
		fmt.Sprintf("%.5f", rec.Landing.Long),
		fmt.Sprintf("%.0f", rec.LandingAlt),
		strconv.Itoa(rec.AirtimeMin),
		strconv.Itoa(rec.NumThermals),
		strconv.Itoa(rec.ThermalGain),
		fmt.Sprintf("%.2f", rec.MedianClimb),
		rec.Source,
	}
}

// OutputAsCSV writes the whole book, oldest flight first. The separator
// defaults to the flightbook's traditional semicolon when sep is zero.
func (r *Report)OutputAsCSV(w io.Writer, sep rune) error {
	sort.Sort(fb.RecordsByDate(r.Records))

	csvWriter := csv.NewWriter(w)
	if sep == 0 { sep = ';' }
	csvWriter.Comma = sep

	csvWriter.Write(BookHeaders)
	for _,rec := range r.Records {
		csvWriter.Write(BookRow(rec))
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
