package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/dm-insights/internal/session"
)

// JSONExporter exports the session report in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a session report to JSON format
func (e *JSONExporter) Export(state *session.State, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(NewReport(state))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
