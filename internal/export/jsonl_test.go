package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/digifarmer-sync/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		session   *internal.Session
		wantLines int
		want      []string
	}{
		{
			name:      "empty session",
			session:   internal.CreateTestSessionWithMessages("test1", []internal.Message{}),
			wantLines: 0,
		},
		{
			name:      "session with messages",
			session:   internal.CreateTestSession("test2"),
			wantLines: 2,
			want: []string{
				`"role":"user"`,
				`"role":"assistant"`,
				`"session_id":"test2"`,
				`"timestamp":"2024-06-01T09:30:00Z"`,
			},
		},
		{
			name:      "image and offline flags",
			session:   internal.CreateTestImageSession("test3"),
			wantLines: 2,
			want: []string{
				`"image":{"digest":`,
				`"offline":true`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}

			if err := exporter.Export(tt.session, &buf); err != nil {
				t.Fatalf("JSONLExporter.Export() error = %v", err)
			}

			output := strings.TrimSpace(buf.String())
			var lines []string
			if output != "" {
				lines = strings.Split(output, "\n")
			}
			if len(lines) != tt.wantLines {
				t.Fatalf("got %d lines, want %d\nOutput: %s", len(lines), tt.wantLines, output)
			}

			for i, line := range lines {
				var obj map[string]interface{}
				if err := json.Unmarshal([]byte(line), &obj); err != nil {
					t.Errorf("line %d is not valid JSON: %v", i, err)
				}
			}

			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output should contain %q\nOutput: %s", want, output)
				}
			}
		})
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
