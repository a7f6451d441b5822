package export

import (
	"strings"
	"testing"

	"github.com/iksnae/dm-insights/internal"
)

func TestFormatWeek(t *testing.T) {
	conv := internal.CreateTestConversation("bob",
		internal.RawMessage{Date: "2024-01-15 09:00:00", From: "bob", Content: "morning!"},
		internal.RawMessage{Date: "2024-01-15 09:05:00", From: "me", Content: "hey **bob**"},
		internal.RawMessage{Date: "2024-01-17 20:00:00", From: "bob", Content: "https://example.com/articles/42"},
		internal.RawMessage{Date: "2024-01-18 07:45:00", From: "bob", Content: ""},
	)
	cluster := conv.WeekClusters["2024-W03"]

	out := FormatWeek("bob", cluster)

	want := []string{
		"# Conversation with bob",
		"**Week:** 3, 2024",
		"**Total messages:** 4",
		"**Date range:** Mon, Jan 15 2024 to Sun, Jan 21 2024",
		"## Monday, January 15, 2024",
		"- **09:00** bob: morning!",
		"- **09:05** me: hey \\*\\*bob\\*\\*",
		"## Wednesday, January 17, 2024",
		"- **20:00** bob: [Link: example.com/articles/42]",
		"- **07:45** bob: _(empty)_",
		"## Statistics",
		"- Messages: 4",
		"- Average per day: 0.57",
		"| bob | 3 | 75.0% |",
		"| me | 1 | 25.0% |",
		"| text | 2 |",
		"| link | 1 |",
		"| empty | 1 |",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("FormatWeek() missing %q\n%s", w, out)
		}
	}

	if strings.Index(out, "January 15") > strings.Index(out, "January 17") {
		t.Error("dates out of order")
	}
	if strings.Contains(out, "| sticker |") {
		t.Error("types without messages should be omitted")
	}
}
