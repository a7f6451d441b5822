package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Record is one message entry in an export fixture
type Record struct {
	Date    string `json:"Date"`
	From    string `json:"From"`
	Content string `json:"Content"`
}

// BuildExport renders conversations in the data export's nested layout
func BuildExport(t *testing.T, conversations map[string][]Record) []byte {
	t.Helper()
	history := make(map[string]interface{}, len(conversations))
	for partner, records := range conversations {
		if records == nil {
			records = []Record{}
		}
		history["Chat History with "+partner+":"] = records
	}
	return JSONMarshal(t, map[string]interface{}{
		"Direct Message": map[string]interface{}{
			"Direct Messages": map[string]interface{}{
				"ChatHistory": history,
			},
		},
	})
}

// WriteExport writes an export fixture into dir and returns its path
func WriteExport(t *testing.T, dir string, conversations map[string][]Record) string {
	t.Helper()
	path := filepath.Join(dir, "user_data.json")
	if err := os.WriteFile(path, BuildExport(t, conversations), 0644); err != nil {
		t.Fatalf("Failed to write export fixture: %v", err)
	}
	return path
}

// SampleConversations is a small export: one week with bob, a longer
// history with carol
func SampleConversations() map[string][]Record {
	return map[string][]Record{
		"bob": {
			{Date: "2024-01-15 09:00:00", From: "bob", Content: "morning!"},
			{Date: "2024-01-15 09:05:00", From: "me", Content: "hey bob"},
			{Date: "2024-01-16 18:30:00", From: "bob", Content: "https://www.tiktok.com/@someone/video/7312345678901234567"},
			{Date: "2024-01-17 20:00:00", From: "me", Content: "check https://example.com/articles/42?ref=dm"},
			{Date: "2024-01-18 07:45:00", From: "bob", Content: "[https://p16-sign.tiktokcdn.com/sticker/happy%20cat.gif]"},
		},
		"carol": {
			{Date: "2023-11-02 12:00:00", From: "carol", Content: "long time no see?"},
			{Date: "2023-11-02 12:10:00", From: "me", Content: "too long"},
			{Date: "2023-12-24 21:00:00", From: "me", Content: "happy holidays"},
			{Date: "2024-01-30 08:00:00", From: "carol", Content: ""},
			{Date: "2024-01-31 08:00:00", From: "carol", Content: "photo https://cdn.example.com/pics/beach.JPG"},
		},
	}
}

// JSONMarshal marshals a value to JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}

// JSONUnmarshal unmarshals JSON for testing
func JSONUnmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
}
