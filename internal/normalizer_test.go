package internal

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-15 09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{"2024-01-15T09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{" 2024-01-15 09:30:00 ", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{"15/01/2024 09:30", time.Time{}, true},
		{"2024-01-15", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if tt.wantErr {
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("ParseTimestamp(%q) error should be a ParseError", tt.input)
			}
		}
	}
}

func TestNormalizeMessage(t *testing.T) {
	n := NewNormalizer(1)

	msg, err := n.NormalizeMessage(RawMessage{Date: "2024-03-10 23:30:00", From: "bob", Content: "hi?"})
	if err != nil {
		t.Fatalf("NormalizeMessage() error = %v", err)
	}

	want := time.Date(2024, 3, 11, 0, 30, 0, 0, time.UTC)
	if !msg.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", msg.Timestamp, want)
	}
	if msg.Year != 2024 || msg.Month != time.March || msg.Day != 11 || msg.Hour != 0 {
		t.Errorf("calendar fields = %d-%d-%d %dh, want 2024-3-11 0h", msg.Year, msg.Month, msg.Day, msg.Hour)
	}
	if msg.Weekday != time.Monday {
		t.Errorf("Weekday = %v, want Monday", msg.Weekday)
	}
	if msg.ISOYear != 2024 || msg.ISOWeek != 11 {
		t.Errorf("ISO week = %d-W%d, want 2024-W11", msg.ISOYear, msg.ISOWeek)
	}
	if msg.Type != ContentText || !msg.IsQuestion() {
		t.Errorf("Type = %v, IsQuestion = %v", msg.Type, msg.IsQuestion())
	}
	if msg.DateKey() != "2024-03-11" || msg.WeekKey() != "2024-W11" || msg.MonthKey() != "2024-03" {
		t.Errorf("keys = %s %s %s", msg.DateKey(), msg.WeekKey(), msg.MonthKey())
	}
}

func TestNormalizeMessage_NegativeOffset(t *testing.T) {
	msg, err := NewNormalizer(-5.5).NormalizeMessage(RawMessage{Date: "2024-01-01 03:00:00", From: "a", Content: "x"})
	if err != nil {
		t.Fatalf("NormalizeMessage() error = %v", err)
	}
	want := time.Date(2023, 12, 31, 21, 30, 0, 0, time.UTC)
	if !msg.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", msg.Timestamp, want)
	}
	if msg.Weekday != time.Sunday {
		t.Errorf("Weekday = %v, want Sunday", msg.Weekday)
	}
}

func TestNormalizeConversation(t *testing.T) {
	normalizer := NewNormalizer(0)

	tests := []struct {
		name      string
		raws      []RawMessage
		wantCount int
		wantErr   bool
	}{
		{
			name:    "no messages",
			raws:    nil,
			wantErr: true,
		},
		{
			name:    "only unparseable dates",
			raws:    []RawMessage{{Date: "yesterday", From: "a", Content: "x"}},
			wantErr: true,
		},
		{
			name: "drops unparseable and sorts",
			raws: []RawMessage{
				{Date: "2024-01-02 10:00:00", From: "b", Content: "second"},
				{Date: "garbage", From: "a", Content: "dropped"},
				{Date: "2024-01-01 10:00:00", From: "a", Content: "first"},
			},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := normalizer.NormalizeConversation("bob", tt.raws)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeConversation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(conv.Messages) != tt.wantCount {
				t.Fatalf("len(Messages) = %d, want %d", len(conv.Messages), tt.wantCount)
			}
			if conv.FirstMessage().Content != "first" || conv.LastMessage().Content != "second" {
				t.Errorf("messages not sorted: first=%q last=%q", conv.FirstMessage().Content, conv.LastMessage().Content)
			}
			if conv.FirstMessage() != &conv.Messages[0] {
				t.Error("FirstMessage() should reference the messages slice")
			}
		})
	}
}

func TestNormalizeAllConversations(t *testing.T) {
	conversations := Conversations{
		"bob":   {{Date: "2024-01-01 10:00:00", From: "bob", Content: "hi"}},
		"carol": {{Date: "not a date", From: "carol", Content: "hi"}},
	}

	result := NewNormalizer(0).NormalizeAllConversations(conversations)
	if len(result) != 1 {
		t.Fatalf("NormalizeAllConversations() returned %d conversations, want 1", len(result))
	}
	if _, ok := result["bob"]; !ok {
		t.Error("bob should be normalized")
	}
}
