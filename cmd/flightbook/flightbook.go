package main

// Crawls a directory tree (or a GCS bucket) of IGC tracklogs, runs the
// flightbook pipeline over every trace it finds, and writes the book as
// CSV, PDF and/or a gob archive.
//
//   flightbook -dir ~/igc -csv book.csv -pdf book.pdf
//   flightbook -bucket my-traces -prefix 2023/ -csv - -nogeocode
//   flightbook -dir ~/igc -publish my-books -project my-gcp -v 1

import(
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	fb "github.com/kampelmuehler/flightbook-generator"
	"github.com/kampelmuehler/flightbook-generator/batch"
	fblog "github.com/kampelmuehler/flightbook-generator/log"
	"github.com/kampelmuehler/flightbook-generator/report"
)

var(
	ctx = context.Background()

	fDir        string
	fBucket     string
	fPrefix     string

	fCsv        string
	fPdf        string
	fGob        string
	fSep        string
	fFormats    bool

	fAltSource  string
	fWorkers    int
	fNoGeocode  bool
	fTimeout    time.Duration

	fVerbosity  int
	fLogDir     string

	fPublish    string
	fProject    string
	fDataset    string
	fTable      string
)

func init() {
	flag.StringVar(&fDir, "dir", ".", "directory tree to crawl for .igc/.igc.gz files")
	flag.StringVar(&fBucket, "bucket", "", "GCS bucket to read traces from instead of -dir")
	flag.StringVar(&fPrefix, "prefix", "", "object name prefix within -bucket")

	flag.StringVar(&fCsv, "csv", "flightbook.csv", "CSV output file; '-' for stdout, '' to skip")
	flag.StringVar(&fPdf, "pdf", "", "PDF output file")
	flag.StringVar(&fGob, "gob", "", "gob archive output file")
	flag.StringVar(&fSep, "sep", ";", "CSV field separator")
	flag.BoolVar(&fFormats, "formats", false, "list the known output formats and exit")

	flag.StringVar(&fAltSource, "alt", fb.AltSourceGPSPreferred,
		"altitude source: {gps,pressure,gps-preferred}")
	flag.IntVar(&fWorkers, "workers", 0, "concurrent trace pipelines (0: default)")
	flag.BoolVar(&fNoGeocode, "nogeocode", false, "skip location lookups")
	flag.DurationVar(&fTimeout, "timeout", 0, "deadline for the whole run (0: none)")

	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.StringVar(&fLogDir, "logdir", "", "where the slog logfile goes")

	flag.StringVar(&fPublish, "publish", "", "GCS bucket to publish the book into ('' to skip)")
	flag.StringVar(&fProject, "project", "", "GCP project for the BigQuery load job ('' to skip)")
	flag.StringVar(&fDataset, "dataset", "flightbook", "BigQuery dataset for the load job")
	flag.StringVar(&fTable, "table", "flights", "BigQuery table for the load job")
	flag.Parse()
}

// {{{ configFromArgs

func configFromArgs() fb.Config {
	cfg := fb.DefaultConfig()
	cfg.AltitudeSource = fAltSource
	if fNoGeocode { cfg.GeocodeEnabled = false }
	if fWorkers > 0 { cfg.Workers = fWorkers }
	if len(fSep) > 0 { cfg.CSVSeparator = rune(fSep[0]) }
	return cfg
}

// }}}
// {{{ sourceFromArgs

func sourceFromArgs() batch.Source {
	if fBucket != "" {
		src,err := batch.NewGCSSource(ctx, fBucket, fPrefix)
		if err != nil { log.Fatalf("GCS source [gs://%s]%s: %v", fBucket, fPrefix, err) }
		return src
	}

	src,err := batch.NewDirSource(fDir)
	if err != nil { log.Fatalf("crawl %s: %v", fDir, err) }
	fmt.Printf("found %d trace files under %s\n", src.Len(), fDir)
	return src
}

// }}}
// {{{ writeTo

func writeTo(path string, write func(io.Writer) error) {
	w := io.Writer(os.Stdout)
	if path != "-" {
		f,err := os.Create(path)
		if err != nil { log.Fatalf("create %s: %v", path, err) }
		defer f.Close()
		w = f
	}

	if err := write(w); err != nil { log.Fatalf("write %s: %v", path, err) }
	if path != "-" { fmt.Printf("wrote %s\n", path) }
}

// }}}
// {{{ publish

func publish(rep *report.Report, lg *fblog.Logger) {
	pub := batch.Publisher{
		Folder:    fPublish,
		Project:   fProject,
		Dataset:   fDataset,
		TableName: fTable,
		Log:       lg,
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	jsonFile := fmt.Sprintf("flightbook-%s.json", stamp)
	csvFile := fmt.Sprintf("flightbook-%s.csv", stamp)

	n,err := pub.PublishRecordsGCS(ctx, rep.Records, jsonFile)
	if err != nil { log.Fatalf("publish records: %v", err) }

	if err := pub.PublishCSV(ctx, rep, csvFile); err != nil {
		log.Fatalf("publish csv: %v", err)
	}
	fmt.Printf("published gs://%s/{%s,%s}\n", fPublish, jsonFile, csvFile)

	if n > 0 && fProject != "" {
		if err := pub.SubmitLoadJob(ctx, jsonFile); err != nil {
			log.Fatalf("bigquery load: %v", err)
		}
		fmt.Printf("loaded %d rows into %s.%s.%s\n", n, fProject, fDataset, fTable)
	}
}

// }}}

func main() {
	if fFormats {
		for _,entry := range report.ListWriters() {
			fmt.Printf("  %-8.8s %s\n", entry.Name, entry.Description)
		}
		return
	}

	if fTimeout > 0 {
		var cancel context.CancelFunc
		ctx,cancel = context.WithTimeout(ctx, fTimeout)
		defer cancel()
	}

	level := "info"
	if fVerbosity > 0 { level = "debug" }
	lg := fblog.New(level, fLogDir)

	cfg := configFromArgs()
	p,err := batch.NewPipeline(cfg, lg)
	if err != nil { log.Fatal(err) }

	rep := report.BlankReport()
	rep.Name = "flightbook"
	if fVerbosity > 0 { rep.Level = report.DEBUG }

	if err := p.RunAll(ctx, sourceFromArgs(), &rep); err != nil {
		log.Fatalf("batch run: %v", err)
	}
	rep.FinishSummary()

	if fCsv != "" {
		writeTo(fCsv, func(w io.Writer) error { return rep.OutputAsCSV(w, cfg.CSVSeparator) })
	}
	if fPdf != "" {
		entry,err := report.GetWriter("pdf")
		if err != nil { log.Fatal(err) }
		writeTo(fPdf, func(w io.Writer) error { return entry.WriterFunc(&rep, w) })
	}
	if fGob != "" {
		entry,err := report.GetWriter("gob")
		if err != nil { log.Fatal(err) }
		writeTo(fGob, func(w io.Writer) error { return entry.WriterFunc(&rep, w) })
	}

	if fPublish != "" { publish(&rep, lg) }

	elapsed := time.Since(rep.Started).Round(time.Millisecond)
	fmt.Printf("%d flights, %d skipped files, in %s\n",
		len(rep.Records), rep.SkippedFiles(), elapsed)

	if fVerbosity > 0 {
		for _,row := range rep.MetadataTable() {
			fmt.Printf("  %-28.28s %s\n", row[0], row[1])
		}
	}
	if fVerbosity > 1 { fmt.Print(rep.Log) }
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
