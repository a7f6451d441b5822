package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/dm-insights/internal/session"
)

// JSONLExporter exports every normalized message, one per line
type JSONLExporter struct{}

type messageRecord struct {
	Partner   string    `json:"partner"`
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Week      string    `json:"week"`
	Month     string    `json:"month"`
	URL       string    `json:"url,omitempty"`
}

// Export writes messages partner by partner in chronological order
func (e *JSONLExporter) Export(state *session.State, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, partner := range state.Partners {
		for _, msg := range state.Conversations[partner].Messages {
			rec := messageRecord{
				Partner:   partner,
				Timestamp: msg.Timestamp,
				From:      msg.From,
				Type:      string(msg.Type),
				Content:   msg.Content,
				Week:      msg.WeekKey(),
				Month:     msg.MonthKey(),
			}
			if msg.Payload != nil {
				rec.URL = msg.Payload.URL
			}

			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("failed to encode message: %w", err)
			}
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
