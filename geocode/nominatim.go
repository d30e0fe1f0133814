package geocode

import (
	"context"
	"fmt"
	"net/url"

	"github.com/skypies/geo"

	fb "github.com/kampelmuehler/flightbook-generator"
)

// Reverser turns a position into a settlement name via Nominatim reverse
// geocoding. Landing fields belong to a city if Nominatim says so, else to a
// village; anything smaller isn't worth a flightbook column.
type Reverser struct {
	Client
	URL string // Override for tests; empty means the public Nominatim
}

const nominatimURL = "https://nominatim.openstreetmap.org/reverse"

// {{{ r.Lookup

type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Village string `json:"village"`
	} `json:"address"`
}

// Lookup satisfies flightbook.LocationFunc.
func (r Reverser)Lookup(ctx context.Context, pos geo.Latlong) (string, error) {
	stem := r.URL
	if stem == "" { stem = nominatimURL }

	args := url.Values{}
	args.Set("format", "jsonv2")
	args.Set("lat", fmt.Sprintf("%.6f", pos.Lat))
	args.Set("lon", fmt.Sprintf("%.6f", pos.Long))

	resp := reverseResponse{}
	if err := r.getJSON(ctx, stem+"?"+args.Encode(), &resp); err != nil {
		return "", err
	}

	if resp.Address.City != "" { return resp.Address.City, nil }
	if resp.Address.Village != "" { return resp.Address.Village, nil }
	return "", fmt.Errorf("reverse %s: %w", pos, fb.ErrNoLocation)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
