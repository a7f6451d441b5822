package export

import (
	"io"

	"github.com/iksnae/dm-insights/internal/session"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the session report in YAML format
type YAMLExporter struct{}

// Export exports a session report to YAML format
func (e *YAMLExporter) Export(state *session.State, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(NewReport(state))
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
