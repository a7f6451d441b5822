package internal

import (
	"reflect"
	"testing"
	"time"
)

func TestDetectCandidateIdentities(t *testing.T) {
	conversations := Conversations{
		"bob": {
			{Date: "2024-01-01 10:00:00", From: "bob", Content: "a"},
			{Date: "2024-01-01 10:01:00", From: "bob", Content: "b"},
			{Date: "2024-01-01 10:02:00", From: "me", Content: "c"},
		},
		"carol": {
			{Date: "2024-01-02 10:00:00", From: "carol", Content: "a"},
			{Date: "2024-01-02 10:01:00", From: "me", Content: "b"},
		},
		"dan": {
			{Date: "2024-01-03 10:00:00", From: "dan", Content: "a"},
		},
	}

	got := DetectCandidateIdentities(conversations)
	want := []string{"me", "bob", "carol", "dan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectCandidateIdentities() = %v, want %v", got, want)
	}

	if got := DetectCandidateIdentities(Conversations{}); len(got) != 0 {
		t.Errorf("DetectCandidateIdentities(empty) = %v, want empty", got)
	}
}

func TestResolveIdentity(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	messages := CreateAlternatingMessages(start, time.Minute, 4, "bob", "me")

	tests := []struct {
		name     string
		messages []Message
		identity string
		want     string
	}{
		{"identity present", messages, "me", "me"},
		{"identity absent falls back to first sender", messages, "alice", "bob"},
		{"no messages", nil, "me", "me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveIdentity(tt.messages, tt.identity); got != tt.want {
				t.Errorf("ResolveIdentity() = %v, want %v", got, tt.want)
			}
		})
	}
}
