package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/digifarmer-sync/internal"
)

// ErrUnsupportedFormat is returned for a format no exporter handles
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Exporter writes one session in a single format
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// registry lists each format once, canonical name first, then aliases
var registry = []struct {
	names  []string
	create func() Exporter
}{
	{[]string{"jsonl"}, func() Exporter { return &JSONLExporter{} }},
	{[]string{"md", "markdown"}, func() Exporter { return &MarkdownExporter{} }},
	{[]string{"yaml", "yml"}, func() Exporter { return &YAMLExporter{} }},
	{[]string{"json"}, func() Exporter { return &JSONExporter{} }},
}

// Formats returns the canonical format names
func Formats() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.names[0])
	}
	return names
}

// NewExporter returns the exporter for format. Names are matched
// case-insensitively and aliases such as "markdown" and "yml" are accepted.
func NewExporter(format string) (Exporter, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	for _, r := range registry {
		for _, n := range r.names {
			if n == name {
				return r.create(), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
}
