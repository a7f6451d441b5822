package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/dm-insights/testutil"
)

func TestJSONExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(testState(t), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var report Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.Overview.TotalMessages != 10 {
		t.Errorf("TotalMessages = %d, want 10", report.Overview.TotalMessages)
	}
	if !strings.Contains(buf.String(), "\n  \"overview\"") {
		t.Error("JSON should be indented")
	}
}

func TestYAMLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(testState(t), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if doc["identity"] != "me" {
		t.Errorf("identity = %v, want me", doc["identity"])
	}
	if _, ok := doc["conversations"].([]interface{}); !ok {
		t.Error("conversations should be a list")
	}
}

func TestJSONLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(testState(t), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var records []messageRecord
	for scanner.Scan() {
		var rec messageRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", len(records)+1, err)
		}
		records = append(records, rec)
	}

	if len(records) != 10 {
		t.Fatalf("got %d lines, want 10", len(records))
	}
	if records[0].Partner != "bob" || records[9].Partner != "carol" {
		t.Errorf("records not grouped by partner: %s .. %s", records[0].Partner, records[9].Partner)
	}
	if records[2].Type != "media" || records[2].Content != "[Media: TikTok Video]" || records[2].URL == "" {
		t.Errorf("video record = %+v", records[2])
	}
	if records[0].Week != "2024-W03" || records[0].Month != "2024-01" {
		t.Errorf("keys = %s %s", records[0].Week, records[0].Month)
	}
}

func TestMarkdownExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(testState(t), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	want := []string{
		"# Direct Message Insights",
		"**Identity:** me",
		"**Conversations:** 2",
		"**Messages:** 10 (4 yours)",
		"## Peak Activity",
		"| bob | 5 |",
		"## carol",
		"### Milestones",
		"First message",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("Export() output missing %q", w)
		}
	}
}

func TestSQLiteExporter_Export(t *testing.T) {
	state := testState(t)
	path := filepath.Join(testutil.CreateTempDir(t), "report.sqlite")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := (&SQLiteExporter{}).Export(state, f); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	db := testutil.OpenSQLiteReport(t, path)
	tests := []struct {
		table string
		want  int
	}{
		{"conversations", 2},
		{"messages", 10},
		{"week_clusters", 4},
		{"month_groups", 4},
	}
	for _, tt := range tests {
		if got := testutil.CountRows(t, db, tt.table); got != tt.want {
			t.Errorf("%s has %d rows, want %d", tt.table, got, tt.want)
		}
	}

	var weeks string
	if err := db.Get(&weeks, "SELECT weeks FROM month_groups WHERE partner = ? AND month_key = ?", "carol", "2024-01"); err != nil {
		t.Fatalf("query month_groups: %v", err)
	}
	if weeks != "2024-W05" {
		t.Errorf("carol 2024-01 weeks = %q, want 2024-W05", weeks)
	}

	var sticker string
	if err := db.Get(&sticker, "SELECT content FROM messages WHERE type = 'sticker'"); err != nil {
		t.Fatalf("query messages: %v", err)
	}
	if sticker != "[Sticker: happy cat.gif]" {
		t.Errorf("sticker content = %q", sticker)
	}
}

func TestWriteSQLite_Overwrites(t *testing.T) {
	state := testState(t)
	path := filepath.Join(testutil.CreateTempDir(t), "report.sqlite")

	for i := 0; i < 2; i++ {
		if err := WriteSQLite(state, path); err != nil {
			t.Fatalf("WriteSQLite() run %d error = %v", i+1, err)
		}
	}
	db := testutil.OpenSQLiteReport(t, path)
	if got := testutil.CountRows(t, db, "messages"); got != 10 {
		t.Errorf("messages = %d after rewrite, want 10", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"**bold**", "\\*\\*bold\\*\\*"},
		{"__under__", "\\_\\_under\\_\\_"},
		{"```\n**code**\n```", "```\n**code**\n```"},
	}
	for _, tt := range tests {
		if got := escapeMarkdown(tt.in); got != tt.want {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := escapeTable("a|b"); got != "a\\|b" {
		t.Errorf("escapeTable() = %q", got)
	}
}
