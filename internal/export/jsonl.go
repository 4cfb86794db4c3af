package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/digifarmer-sync/internal"
)

// JSONLExporter exports one message per line
type JSONLExporter struct{}

type jsonlLine struct {
	SessionID string             `json:"session_id"`
	ID        string             `json:"id"`
	Role      internal.Role      `json:"role"`
	Text      string             `json:"text"`
	Timestamp string             `json:"timestamp,omitempty"`
	Language  string             `json:"language,omitempty"`
	Image     *internal.ImageRef `json:"image,omitempty"`
	Offline   bool               `json:"offline,omitempty"`
}

// Export writes each message of session as a JSON line
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range session.Messages {
		line := jsonlLine{
			SessionID: session.ID,
			ID:        msg.ID,
			Role:      msg.Role,
			Text:      msg.Text,
			Language:  msg.Language,
			Image:     msg.Image,
			Offline:   msg.Offline,
		}
		if !msg.Timestamp.IsZero() {
			line.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
		}

		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
