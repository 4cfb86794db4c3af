package export

import (
	"io"

	"github.com/iksnae/digifarmer-sync/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports a session log as YAML
type YAMLExporter struct{}

// Export writes session as a YAML document
func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(session)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
