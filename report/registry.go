package report

import(
	"fmt"
	"io"
	"sort"
)

// A simple registry of all known book output formats.
type WriterFunc func(*Report, io.Writer) error

type WriterEntry struct {
	WriterFunc
	Name, Description string
}

var writerRegistry = map[string]WriterEntry{}

func HandleWriter(name string, f WriterFunc, description string) {
	writerRegistry[name] = WriterEntry{
		WriterFunc: f,
		Name: name,
		Description: description,
	}
}

func ListWriters() []WriterEntry {
	out := []WriterEntry{}

	keys := []string{}
	for k,_ := range writerRegistry { keys = append(keys, k) }
	sort.Strings(keys)

	for _,k := range keys {
		out = append(out, writerRegistry[k])
	}
	return out
}

func GetWriter(name string) (WriterEntry, error) {
	entry,exists := writerRegistry[name]
	if !exists {
		return WriterEntry{}, fmt.Errorf("output format '%s' not known", name)
	}
	return entry, nil
}

func init() {
	HandleWriter("csv", func(r *Report, w io.Writer) error { return r.OutputAsCSV(w, 0) },
		"flightbook table, semicolon separated")
	HandleWriter("pdf", (*Report).OutputAsPDF,
		"printable flightbook table")
	HandleWriter("gob", func(r *Report, w io.Writer) error { return MarshalRecords(r.Records, w) },
		"records as a gob archive, for reloading")
}
