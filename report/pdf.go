package report

import(
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	fb "github.com/kampelmuehler/flightbook-generator"
)

var (
	HeaderRGB = []int{0x2c, 0x3e, 0x50}
	BandRGB   = []int{0xe8, 0xee, 0xf4}
	FlagRGB   = []int{0xb0, 0x30, 0x30}
)

// BookPdf renders the flightbook as a table, one flight per row. Headers
// repeat on every page; rows built from a low-confidence takeoff/landing
// fallback come out flagged in red.
type BookPdf struct {
	Title     string
	Caption   string

	ColWidths []float64
	RowH      float64

	*gofpdf.Fpdf // Embedded pointer

	Debug     string
	ShowDebug bool
}

// Compact header labels; the CSV carries the canonical long ones.
var(
	bookPdfHeaders = []string{
		"Date", "Glider", "T/O", "Takeoff", "Lat", "Lon", "Alt (m)",
		"Ldg", "Landing", "Lat", "Lon", "Alt (m)",
		"Min", "Th", "Gain (m)", "m/s", "IGC File",
	}
	bookPdfAligns = []string{
		"L", "L", "C", "L", "R", "R", "R",
		"C", "L", "R", "R", "R",
		"R", "R", "R", "R", "L",
	}
)

// {{{ bp.Init

func (bp *BookPdf)Init() {
	bp.Fpdf = gofpdf.New("L", "mm", "A4", "")
	bp.AliasNbPages("")
	bp.SetFooterFunc(func() {
		bp.SetY(-12)
		bp.SetFont("Arial", "I", 7)
		bp.SetTextColor(0x80, 0x80, 0x80)
		bp.CellFormat(0, 8, fmt.Sprintf("%d/{nb}", bp.PageNo()), "", 0, "C", false, 0, "")
	})
	bp.SetAutoPageBreak(false, 0) // Row placement handles its own page breaks
	bp.AddPage()
	bp.SetFont("Arial", "", 7)

	if bp.Title == ""          { bp.Title = "Flightbook" }
	if bp.RowH == 0.0          { bp.RowH = 5.0 }
	if len(bp.ColWidths) == 0 {
		// Sums to the printable width of landscape A4 with default margins
		bp.ColWidths = []float64{
			18, 24, 12, 30, 14, 14, 12,
			12, 30, 14, 14, 12,
			12, 10, 12, 13, 24,
		}
	}
}

// }}}
// {{{ bp.DrawTitle

func (bp *BookPdf)DrawTitle() {
	bp.SetFont("Arial", "B", 14)
	bp.SetTextColor(HeaderRGB[0], HeaderRGB[1], HeaderRGB[2])
	bp.CellFormat(0, 9, bp.Title, "", 1, "L", false, 0, "")

	if bp.Caption != "" {
		bp.SetFont("Arial", "", 8)
		bp.SetTextColor(0x50, 0x70, 0xc0)
		bp.MultiCell(0, 4, bp.Caption, "", "L", false)
	}

	bp.Ln(2)
	bp.SetTextColor(0, 0, 0)
}

// }}}
// {{{ bp.DrawHeaderRow

func (bp *BookPdf)DrawHeaderRow() {
	bp.SetFont("Arial", "B", 7)
	bp.SetFillColor(HeaderRGB[0], HeaderRGB[1], HeaderRGB[2])
	bp.SetTextColor(0xff, 0xff, 0xff)

	for i,h := range bookPdfHeaders {
		bp.CellFormat(bp.ColWidths[i], bp.RowH+1.0, h, "1", 0, "C", true, 0, "")
	}
	bp.Ln(-1)

	bp.SetFont("Arial", "", 7)
	bp.SetTextColor(0, 0, 0)
}

// }}}
// {{{ bp.DrawRecords

func (bp *BookPdf)DrawRecords(recs []fb.FlightRecord) {
	_,pageH := bp.GetPageSize()
	_,_,_,mBottom := bp.GetMargins()

	for n,rec := range recs {
		if bp.GetY() + bp.RowH > pageH - mBottom - 12 {
			bp.AddPage()
			bp.DrawHeaderRow()
		}

		if n%2 == 1 {
			bp.SetFillColor(BandRGB[0], BandRGB[1], BandRGB[2])
		} else {
			bp.SetFillColor(0xff, 0xff, 0xff)
		}
		if rec.LowConfidence {
			bp.SetTextColor(FlagRGB[0], FlagRGB[1], FlagRGB[2])
		} else {
			bp.SetTextColor(0, 0, 0)
		}

		for i,cell := range BookRow(rec) {
			bp.CellFormat(bp.ColWidths[i], bp.RowH, cell, "1", 0, bookPdfAligns[i], true, 0, "")
		}
		bp.Ln(-1)

		bp.Debug += fmt.Sprintf("%3d: %s\n", n, rec)
	}

	bp.SetTextColor(0, 0, 0)
}

// }}}
// {{{ bp.DrawSummaryTable

func (bp *BookPdf)DrawSummaryTable(rows [][]string) {
	if len(rows) == 0 { return }

	_,pageH := bp.GetPageSize()
	_,_,_,mBottom := bp.GetMargins()

	bp.Ln(4)
	bp.SetFont("Arial", "B", 9)
	bp.CellFormat(0, 6, "Batch summary", "", 1, "L", false, 0, "")
	bp.SetFont("Arial", "", 7)

	for _,row := range rows {
		if bp.GetY() + 4.5 > pageH - mBottom - 12 {
			bp.AddPage()
			bp.SetFont("Arial", "", 7)
		}
		bp.CellFormat(110, 4.5, row[0], "", 0, "L", false, 0, "")
		bp.CellFormat(30, 4.5, row[1], "", 1, "R", false, 0, "")
	}

	if bp.ShowDebug {
		bp.Ln(4)
		bp.MultiCell(0, 3.5, "--DEBUG--\n"+bp.Debug, "", "L", false)
	}
}

// }}}

// {{{ r.OutputAsPDF

// OutputAsPDF writes the book as a PDF table, oldest flight first, with the
// batch counters appended after the last row.
func (r *Report)OutputAsPDF(w io.Writer) error {
	sort.Sort(fb.RecordsByDate(r.Records))

	bp := BookPdf{
		Title: "Flightbook",
		Caption: fmt.Sprintf("%d flights, %d skipped files; generated %s",
			len(r.Records), r.SkippedFiles(),
			time.Now().UTC().Format("2006-01-02 15:04 UTC")),
	}
	bp.Init()
	bp.DrawTitle()
	bp.DrawHeaderRow()
	bp.DrawRecords(r.Records)
	bp.DrawSummaryTable(r.MetadataTable())

	return bp.Output(w)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
