package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/testutil"
)

func TestCheckCommand(t *testing.T) {
	withProblems := testutil.SampleConversations()
	withProblems["dave"] = []testutil.Record{
		{Date: "2024-02-01 10:00:00", From: "dave", Content: "hi"},
		{Date: "yesterday", From: "me", Content: "hello"},
		{Date: "2024-02-01 10:05:00", From: "", Content: "who?"},
	}

	tests := []struct {
		name          string
		conversations map[string][]testutil.Record
		args          []string
		want          []string
		wantErr       bool
	}{
		{
			name:          "clean export",
			conversations: testutil.SampleConversations(),
			want:          []string{"Export located", "Found 2 conversation(s) with 10 message(s)", "All timestamps parse", "Most likely you: me", "Check passed!"},
		},
		{
			name:          "export with problems",
			conversations: withProblems,
			want:          []string{"1 incomplete record(s)", "1 message(s) have unparseable dates", "Check passed with warnings", "Usable messages: 11"},
		},
		{
			name:          "details",
			conversations: withProblems,
			args:          []string{"--verbose"},
			want:          []string{"Path: ", "dave: 1", "[1] me"},
		},
		{
			name: "no usable messages",
			conversations: map[string][]testutil.Record{
				"eve": {{Date: "never", From: "eve", Content: "?"}},
			},
			want:    []string{"Check failed"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testutil.WriteExport(t, testutil.CreateTempDir(t), tt.conversations)
			args := append([]string{"check"}, tt.args...)
			args = append(args, input)

			out, err := executeCommand(t, nil, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errCheckFailed) {
				t.Errorf("Execute() error = %v, want errCheckFailed", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestCheckCommand_Directory(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	testutil.WriteExport(t, dir, testutil.SampleConversations())

	out, err := executeCommand(t, nil, "check", dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Check passed!") {
		t.Errorf("directory input not checked:\n%s", out)
	}
}

func TestRunCheck_Failures(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	notJSON := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(notJSON, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "missing file", input: filepath.Join(dir, "missing.json"), want: "Export not found"},
		{name: "invalid json", input: notJSON, want: "Invalid export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runCheck(&out, tt.input, nil, 0, false)
			if !errors.Is(err, errCheckFailed) {
				t.Errorf("runCheck() error = %v, want errCheckFailed", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("runCheck() output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestCountBadTimestamps(t *testing.T) {
	conversations := internal.Conversations{
		"bob": {
			{Date: "2024-01-15 09:00:00", From: "bob", Content: "hi"},
			{Date: "15/01/2024", From: "me", Content: "hey"},
		},
		"carol": {
			{Date: "2024-01-15 09:00:00", From: "carol", Content: "hi"},
		},
	}

	got := countBadTimestamps(conversations, 0)
	if got["bob"] != 1 {
		t.Errorf("countBadTimestamps()[bob] = %d, want 1", got["bob"])
	}
	if _, ok := got["carol"]; ok {
		t.Errorf("countBadTimestamps() should not list carol: %v", got)
	}
}
