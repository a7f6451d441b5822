package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/analytics"
	"github.com/iksnae/dm-insights/internal/export"
	"github.com/iksnae/dm-insights/internal/session"
)

func TestShowCommand(t *testing.T) {
	input := sampleExport(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr error
	}{
		{
			name: "conversation statistics",
			args: []string{"show", input, "bob"},
			want: []string{"💬 bob", "Messages: 5 • You: me (40.0%)", "Weeks (1)", "2024-W03", "By weekday", "First message"},
		},
		{
			name: "week limit",
			args: []string{"show", "--limit", "1", input, "carol"},
			want: []string{"Weeks (3)", "January 2024", "2024-W05", "(2 more week(s))"},
		},
		{
			name: "single week",
			args: []string{"show", "--week", "2024-W03", input, "bob"},
			want: []string{"# Conversation with bob", "**Week:** 3, 2024", "## Monday, January 15, 2024"},
		},
		{
			name:    "unknown partner",
			args:    []string{"show", input, "dave"},
			wantErr: session.ErrUnknownPartner,
		},
		{
			name:    "week without messages",
			args:    []string{"show", "--week", "2024-W10", input, "bob"},
			wantErr: export.ErrUnknownWeek,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, nil, tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestShowCommand_MalformedWeek(t *testing.T) {
	_, err := executeCommand(t, nil, "show", "--week", "2024-03", sampleExport(t), "bob")
	var parseErr *internal.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Execute() error = %v, want ParseError", err)
	}
}

func TestRenderBars(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		values []float64
		want   []string
		skip   string
	}{
		{
			name:   "all empty",
			labels: []string{"a", "b"},
			values: []float64{0, 0},
			want:   []string{"(no messages)"},
		},
		{
			name:   "full and partial bars",
			labels: []string{"Mon", "Tue", "Wed"},
			values: []float64{4, 0, 1},
			want:   []string{strings.Repeat("█", barWidth) + " 4", "█ 1"},
			skip:   "Tue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			renderBars(&out, tt.labels, tt.values)
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("renderBars() missing %q:\n%s", want, out.String())
				}
			}
			if tt.skip != "" && strings.Contains(out.String(), tt.skip) {
				t.Errorf("renderBars() should skip %q:\n%s", tt.skip, out.String())
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatResponse(analytics.ResponseStats{}); got != "—" {
		t.Errorf("formatResponse(empty) = %q, want %q", got, "—")
	}
	got := formatResponse(analytics.ResponseStats{Count: 3, MeanMinutes: 12.4, MedianMinutes: 5})
	if want := "median 5 min, mean 12 min (3)"; got != want {
		t.Errorf("formatResponse() = %q, want %q", got, want)
	}

	if got := formatTrend(analytics.Trend{Direction: analytics.TrendInsufficient}); got != "insufficient data" {
		t.Errorf("formatTrend(insufficient) = %q", got)
	}
	if got := formatTrend(analytics.Trend{Direction: analytics.TrendUp, ChangePercent: 25}); got != "up (+25.0%)" {
		t.Errorf("formatTrend(up) = %q, want %q", got, "up (+25.0%)")
	}
}

func TestDisplayConversation(t *testing.T) {
	state := testState(t)
	var out bytes.Buffer
	displayConversation(&out, state.Stats["bob"])

	for _, want := range []string{"Balance score:      80", "Category: active", "Jan 15, 2024 to Jan 18, 2024"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("displayConversation() missing %q:\n%s", want, out.String())
		}
	}
}
