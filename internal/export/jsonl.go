package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/talk-to-data/internal"
)

// JSONLExporter exports a session's history one event per line, in the
// same wire shape the stream used.
type JSONLExporter struct{}

// Export writes each history event as one JSON line.
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	for i := range session.History {
		if err := enc.Encode(&session.History[i]); err != nil {
			return fmt.Errorf("failed to encode event %d: %w", i, err)
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
