package main

// Parses IGC tracklogs and dumps what the flightbook pipeline sees in
// them, stage by stage. Handy when a trace summarizes strangely.
//
//   igcdump -v 2 2023-07-15-XCT-ABC-01.igc

import(
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	fb "github.com/kampelmuehler/flightbook-generator"
	"github.com/kampelmuehler/flightbook-generator/igc"
)

var(
	ctx = context.Background()
	fVerbosity int
	fAltSource string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.StringVar(&fAltSource, "alt", fb.AltSourceGPSPreferred,
		"altitude source: {gps,pressure,gps-preferred}")
	flag.Parse()
}

func open(file string) io.ReadCloser {
	rdr,err := os.Open(file)
	if err != nil { log.Fatalf("open '%s': %v", file, err) }

	if !strings.HasSuffix(strings.ToLower(file), ".gz") { return rdr }

	gzRdr,err := gzip.NewReader(rdr)
	if err != nil { log.Fatalf("gzopen '%s': %v", file, err) }
	return gzRdr
}

func dump(file string) {
	rdr := open(file)
	defer rdr.Close()

	trace,err := igc.Parse(rdr)
	if err != nil { log.Fatalf("parse '%s': %v", file, err) }

	cfg := fb.DefaultConfig()
	cfg.AltitudeSource = fAltSource

	fmt.Printf("----{ %s }----\n", filepath.Base(file))
	fmt.Printf("    header: %s\n", trace.Header)

	if fVerbosity > 0 {
		for _,w := range trace.Warnings { fmt.Printf("    warning: %s\n", w) }
	}

	track,err := trace.Track.Cleaned(cfg)
	if err != nil { log.Fatalf("clean '%s': %v", file, err) }
	fmt.Printf("    cleaned: %s (raw had %d fixes)\n", track, len(trace.Track))

	bounds := fb.DetectBounds(track, cfg)
	fmt.Printf("    bounds: %s\n", bounds)

	thermals := fb.DetectThermals(track, bounds, cfg)
	for i,th := range thermals {
		fmt.Printf("    - thermal [%2d] %s\n", i, th)
	}

	rec := fb.Summarizer{}.Summarize(ctx, bounds, thermals, trace.Meta(filepath.Base(file)))
	fmt.Printf("    record: %s\n", rec)

	if fVerbosity > 1 {
		for n,f := range track {
			fmt.Printf("      - [%4d] %s\n", n, f)
		}
	}
	fmt.Printf("\n")
}

func main() {
	if len(flag.Args()) == 0 {
		log.Fatal("usage: igcdump [-v {1,2}] file.igc ...")
	}
	for _,file := range flag.Args() {
		dump(file)
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
