package batch

import(
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"google.golang.org/api/iterator"
)

// hasTraceSuffix does the case-insensitive *.igc / *.igc.gz match, the way
// recorder downloads actually name things (IGC, igc, Igc have all been seen).
func hasTraceSuffix(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".igc") || strings.HasSuffix(name, ".igc.gz")
}

// DirSource crawls a directory tree for trace files and hands back their
// contents one at a time, in path order.
type DirSource struct {
	paths []string
	i     int
}

func NewDirSource(root string) (*DirSource, error) {
	paths := []string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil { return err }
		if d.IsDir() { return nil }
		if hasTraceSuffix(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", root, err)
	}

	sort.Strings(paths)
	return &DirSource{paths: paths}, nil
}

func (s *DirSource)Len() int { return len(s.paths) }

func (s *DirSource)Next(ctx context.Context) (RawTrace, error) {
	if s.i >= len(s.paths) {
		return RawTrace{}, iterator.Done
	}
	path := s.paths[s.i]
	s.i++

	body,err := os.ReadFile(path)
	if err != nil {
		return RawTrace{Name: filepath.Base(path)}, fmt.Errorf("read %s: %w", path, err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		if body,err = gunzip(body); err != nil {
			return RawTrace{Name: filepath.Base(path)}, fmt.Errorf("gunzip %s: %w", path, err)
		}
	}

	return RawTrace{Name: filepath.Base(path), Body: body}, nil
}

func gunzip(body []byte) ([]byte, error) {
	gzipReader,err := gzip.NewReader(bytes.NewReader(body))
	if err != nil { return nil, err }
	defer gzipReader.Close()
	return io.ReadAll(gzipReader)
}
