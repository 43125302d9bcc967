package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/talk-to-data/internal"
)

// JSONExporter exports a session as a single indented JSON document.
type JSONExporter struct{}

// Export writes the whole session, history included, as JSON.
func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(session); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
