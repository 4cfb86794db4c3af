package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/digifarmer-sync/internal"
)

// JSONExporter exports a session log as one pretty-printed JSON document
type JSONExporter struct{}

// Export writes session as indented JSON
func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(session)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
