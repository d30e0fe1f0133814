package geocode

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	pgeo "github.com/paulmach/go.geo"
	"github.com/skypies/geo"

	fb "github.com/kampelmuehler/flightbook-generator"
)

// PeakFinder names a launch after the nearest mapped summit. Paraglider
// takeoffs sit on (or just below) named peaks, which makes for much better
// flightbook rows than whatever hamlet happens to own the slope.
type PeakFinder struct {
	Client
	URL     string  // Override for tests; empty means the public Overpass API
	RadiusM float64 // How far afield a "nearest" peak may be
}

const overpassURL = "https://overpass-api.de/api/interpreter"

type Peak struct {
	Name        string
	ElevationM  float64
	geo.Latlong
	DistanceM   float64 // From the queried position
}

func (p Peak)String() string {
	return fmt.Sprintf("%s (%.0fm), %.0fm away", p.Name, p.ElevationM, p.DistanceM)
}

// {{{ p.Find

type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Find returns the named peaks around a position, closest first. Unnamed
// nodes and nodes without an elevation are dropped; OSM has plenty of both.
func (p PeakFinder)Find(ctx context.Context, pos geo.Latlong) ([]Peak, error) {
	stem := p.URL
	if stem == "" { stem = overpassURL }
	radius := p.RadiusM
	if radius <= 0 { radius = fb.DefaultConfig().PeakRadiusM }

	query := fmt.Sprintf("[out:json];node[natural=peak](around:%.0f,%.6f,%.6f);out;",
		radius, pos.Lat, pos.Long)
	args := url.Values{}
	args.Set("data", query)

	resp := overpassResponse{}
	if err := p.getJSON(ctx, stem+"?"+args.Encode(), &resp); err != nil {
		return nil, err
	}

	from := pgeo.NewPoint(pos.Long, pos.Lat)
	peaks := []Peak{}
	for _,el := range resp.Elements {
		name := el.Tags["name"]
		ele,ok := parseElevation(el.Tags["ele"])
		if name == "" || !ok { continue }
		peaks = append(peaks, Peak{
			Name:       name,
			ElevationM: ele,
			Latlong:    geo.Latlong{Lat: el.Lat, Long: el.Lon},
			DistanceM:  from.GeoDistanceFrom(pgeo.NewPoint(el.Lon, el.Lat), true),
		})
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].DistanceM < peaks[j].DistanceM })

	return peaks, nil
}

// }}}
// {{{ p.Lookup

// Lookup satisfies flightbook.LocationFunc.
func (p PeakFinder)Lookup(ctx context.Context, pos geo.Latlong) (string, error) {
	peaks,err := p.Find(ctx, pos)
	if err != nil { return "", err }
	if len(peaks) == 0 {
		return "", fmt.Errorf("no named peak within %.0fm of %s: %w",
			p.RadiusM, pos, fb.ErrNoLocation)
	}
	return peaks[0].Name, nil
}

// }}}
// {{{ parseElevation

// Mapped elevations are messy: "1288", "1288 m", "1288 Meter", "2,5".
// Decimal commas become points, unit suffixes go away.
func parseElevation(s string) (float64, bool) {
	if s == "" { return 0, false }
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " Meter", "")
	s = strings.ReplaceAll(s, "m", "")
	v,err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil { return 0, false }
	return v, true
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
