package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/digifarmer-sync/internal"
)

// MarkdownExporter exports a session as a readable transcript
type MarkdownExporter struct{}

// Export writes session as Markdown
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Session %s\n\n", session.ID)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range session.Messages {
		var meta []string
		if !msg.Timestamp.IsZero() {
			meta = append(meta, msg.Timestamp.UTC().Format(time.RFC3339))
		}
		if msg.Language != "" {
			meta = append(meta, msg.Language)
		}
		if msg.Offline {
			meta = append(meta, "offline")
		}
		suffix := ""
		if len(meta) > 0 {
			suffix = " (" + strings.Join(meta, ", ") + ")"
		}

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n", msg.Role, suffix)
		if msg.Image != nil {
			_, _ = fmt.Fprintf(w, "_image %s, %d bytes, sha256 %s_\n\n", msg.Image.MediaType, msg.Image.Size, msg.Image.Digest)
		}
		_, _ = fmt.Fprintf(w, "%s\n\n", escapeMarkdown(msg.Text))

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes emphasis markers outside fenced code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
