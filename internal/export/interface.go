package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/dm-insights/internal/analytics"
	"github.com/iksnae/dm-insights/internal/session"
)

// Exporter defines the interface for all whole-session report formats
type Exporter interface {
	Export(state *session.State, w io.Writer) error
	Extension() string
}

// Formats lists the supported report formats
var Formats = []string{"md", "json", "yaml", "jsonl", "sqlite"}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "sqlite", "db":
		return &SQLiteExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// Report is the document written by the JSON and YAML exporters
type Report struct {
	SessionID      string                         `json:"session_id" yaml:"session_id"`
	GeneratedAt    time.Time                      `json:"generated_at" yaml:"generated_at"`
	Identity       string                         `json:"identity" yaml:"identity"`
	TimezoneOffset float64                        `json:"timezone_offset" yaml:"timezone_offset"`
	Overview       *analytics.Overview            `json:"overview" yaml:"overview"`
	Conversations  []*analytics.ConversationStats `json:"conversations" yaml:"conversations"`
	Charts         map[string][]analytics.Dataset `json:"charts" yaml:"charts"`
}

// NewReport collects a State's statistics in partner order
func NewReport(state *session.State) *Report {
	r := &Report{
		SessionID:      state.ID,
		GeneratedAt:    state.CreatedAt,
		Identity:       state.Identity,
		TimezoneOffset: state.TimezoneOffset,
		Overview:       state.Overview,
		Conversations:  make([]*analytics.ConversationStats, 0, len(state.Partners)),
		Charts:         make(map[string][]analytics.Dataset, len(state.Partners)),
	}
	for _, partner := range state.Partners {
		stats := state.Stats[partner]
		r.Conversations = append(r.Conversations, stats)
		r.Charts[partner] = analytics.Charts(stats)
	}
	return r
}
