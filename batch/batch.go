// Package batch fans the per-trace pipeline out across a bounded pool of
// workers and merges everything into one report. Each trace is an
// independent computation; the report is the only shared state, and it is
// only ever touched under the pool's lock.
package batch

import(
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	fb "github.com/kampelmuehler/flightbook-generator"
	"github.com/kampelmuehler/flightbook-generator/geocode"
	"github.com/kampelmuehler/flightbook-generator/igc"
	"github.com/kampelmuehler/flightbook-generator/log"
	"github.com/kampelmuehler/flightbook-generator/report"
)

// A RawTrace is one trace file's bytes, wherever they came from (already
// gunzipped if they arrived compressed).
type RawTrace struct {
	Name string
	Body []byte
}

// A Source yields raw traces until it returns iterator.Done. A per-file
// problem comes back as an error alongside a RawTrace that carries the
// offending name; an error with an empty name means the source itself
// broke and the batch should stop.
type Source interface {
	Next(ctx context.Context) (RawTrace, error)
}

type Pipeline struct {
	Config     fb.Config
	Summarizer fb.Summarizer
	Log        *log.Logger
}

// NewPipeline validates the config and wires up the geocoding
// collaborators (peaks name takeoffs, settlements name landings).
func NewPipeline(cfg fb.Config, lg *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil { return nil, err }

	p := Pipeline{Config: cfg, Log: lg}

	if cfg.GeocodeEnabled {
		client := geocode.NewClient(cfg)
		p.Summarizer.TakeoffNamer = geocode.PeakFinder{Client: client, RadiusM: cfg.PeakRadiusM}.Lookup
		p.Summarizer.LandingNamer = geocode.Reverser{Client: client}.Lookup
	}

	return &p, nil
}

// {{{ p.Process

// Process runs one trace through the whole pipeline: parse, clean, find
// takeoff and landing, find thermals, summarize. Geocoding failures
// degrade to placeholder names inside Summarize; an error returned here
// means the file contributes no record at all.
func (p *Pipeline)Process(ctx context.Context, raw RawTrace) (fb.FlightRecord, error) {
	trace,err := igc.Parse(bytes.NewReader(raw.Body))
	if err != nil {
		return fb.FlightRecord{}, fmt.Errorf("parse %s: %w", raw.Name, err)
	}
	for _,warning := range trace.Warnings {
		p.Log.Debugf("%s: %s", raw.Name, warning)
	}

	track,err := trace.Track.Cleaned(p.Config)
	if err != nil {
		return fb.FlightRecord{}, fmt.Errorf("clean %s: %w", raw.Name, err)
	}

	bounds := fb.DetectBounds(track, p.Config)
	if bounds.LowConfidence {
		p.Log.Warnf("%s: low-confidence takeoff/landing fallback", raw.Name)
	}

	thermals := fb.DetectThermals(track, bounds, p.Config)

	return p.Summarizer.Summarize(ctx, bounds, thermals, trace.Meta(raw.Name)), nil
}

// }}}
// {{{ p.RunAll

// RunAll drains the source through the worker pool. Per-file failures
// become logged skips, never batch failures. Cancelling ctx stops new
// traces from being scheduled; in-flight ones still land in the report.
func (p *Pipeline)RunAll(ctx context.Context, src Source, rep *report.Report) error {
	workers := p.Config.Workers
	if workers < 1 { workers = 1 }

	grp,gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	var mu sync.Mutex
	n := 0

	for {
		if gctx.Err() != nil { break } // Cancelled; stop scheduling

		raw,err := src.Next(gctx)
		if err == iterator.Done { break }
		if err != nil {
			if raw.Name == "" {
				grp.Wait()
				return fmt.Errorf("trace source: %w", err)
			}
			p.Log.Warnf("skipping %s: %v", raw.Name, err)
			mu.Lock()
			rep.SkipFile(raw.Name, err)
			mu.Unlock()
			continue
		}

		n++
		grp.Go(func() error {
			tStart := time.Now()
			rec,err := p.Process(gctx, raw)

			mu.Lock()
			defer mu.Unlock()
			rep.Stats.RecordValue("pipeline", time.Since(tStart).Nanoseconds()/1000)
			if err != nil {
				p.Log.Warnf("skipping %s: %v", raw.Name, err)
				rep.SkipFile(raw.Name, err)
				return nil
			}
			rep.AddRecord(rec)
			return nil
		})
	}

	werr := grp.Wait()
	p.Log.Infof("batch done: %d traces in, %d records, %d skipped",
		n, len(rep.Records), rep.SkippedFiles())
	if werr != nil { return werr }
	return ctx.Err()
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
