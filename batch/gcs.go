package batch

import(
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"google.golang.org/api/iterator"
)

// GCSSource streams traces out of a bucket prefix, for flightbooks built
// straight from instrument uploads. Objects that aren't traces are
// silently passed over; unreadable ones become per-file errors.
type GCSSource struct {
	Bucket string
	Prefix string

	client *storage.Client
	it     *storage.ObjectIterator
}

func NewGCSSource(ctx context.Context, bucket, prefix string) (*GCSSource, error) {
	client,err := storage.NewClient(ctx)
	if err != nil { return nil, err }

	src := GCSSource{Bucket: bucket, Prefix: prefix, client: client}
	src.it = client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	return &src, nil
}

// {{{ s.Next

func (s *GCSSource)Next(ctx context.Context) (RawTrace, error) {
	for {
		oa,err := s.it.Next()
		if err == iterator.Done {
			return RawTrace{}, iterator.Done
		}
		if err != nil {
			return RawTrace{}, fmt.Errorf("GCS-Readdir [gs://%s]%s: %v", s.Bucket, s.Prefix, err)
		}

		if !hasTraceSuffix(oa.Name) { continue }

		body,err := s.readObject(ctx, oa.Name)
		if err != nil {
			return RawTrace{Name: oa.Name}, err
		}

		return RawTrace{Name: path.Base(oa.Name), Body: body}, nil
	}
}

// }}}
// {{{ s.readObject

func (s *GCSSource)readObject(ctx context.Context, name string) ([]byte, error) {
	gcsReader,err := s.client.Bucket(s.Bucket).Object(name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCS-Open %s|%s: %v", s.Bucket, name, err)
	}
	defer gcsReader.Close()

	var r io.Reader = gcsReader
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		gzipReader,err := gzip.NewReader(gcsReader)
		if err != nil {
			return nil, fmt.Errorf("GCS-Open+GZ %s|%s: %v", s.Bucket, name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	return io.ReadAll(r)
}

// }}}

func (s *GCSSource)Close() error { return s.client.Close() }

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
