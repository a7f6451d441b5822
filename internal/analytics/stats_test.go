package analytics

import (
	"testing"
	"time"

	"github.com/iksnae/dm-insights/internal"
)

func bobScenario() *internal.Conversation {
	return internal.CreateTestConversation("bob",
		internal.RawMessage{Date: "2024-01-15 09:00:00", From: "bob", Content: "hey"},
		internal.RawMessage{Date: "2024-01-15 09:05:00", From: "you", Content: "hi!"},
		internal.RawMessage{Date: "2024-01-15 09:20:00", From: "bob", Content: "how was the trip?"},
		internal.RawMessage{Date: "2024-01-15 09:45:00", From: "you", Content: "great"},
		internal.RawMessage{Date: "2024-01-15 10:10:00", From: "bob", Content: "https://www.tiktok.com/@a/video/1"},
	)
}

func TestComputeConversationStats_Scenario(t *testing.T) {
	conv := bobScenario()
	opts := DefaultOptions()
	opts.Now = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	stats := ComputeConversationStats(conv, "you", opts)

	if stats.WeekCount != 1 || stats.MonthCount != 1 {
		t.Errorf("weeks/months = %d/%d, want 1/1", stats.WeekCount, stats.MonthCount)
	}
	if stats.BalanceScore != 80 {
		t.Errorf("BalanceScore = %v, want 80", stats.BalanceScore)
	}
	if stats.Initiators.Episodes != 1 || stats.Initiators.Them != 1 {
		t.Errorf("Initiators = %+v, want one episode started by bob", stats.Initiators)
	}
	if stats.YourMessages != 2 || stats.TheirMessages != 3 || stats.YourPercent != 40 {
		t.Errorf("split = %d/%d (%v%%)", stats.YourMessages, stats.TheirMessages, stats.YourPercent)
	}
	if len(stats.Bursts) != 1 || stats.Bursts[0].Count != 5 {
		t.Errorf("Bursts = %+v, want one burst of 5", stats.Bursts)
	}
	if stats.ContentMix[internal.ContentMedia] != 1 || stats.ContentMix[internal.ContentText] != 4 {
		t.Errorf("ContentMix = %v", stats.ContentMix)
	}
	if stats.Category != CategoryActive || stats.DaysSinceLast != 4 {
		t.Errorf("Category = %v, DaysSinceLast = %d", stats.Category, stats.DaysSinceLast)
	}
	if stats.Streaks.Longest != 1 || stats.Streaks.Current != 0 {
		t.Errorf("Streaks = %+v", stats.Streaks)
	}
	if stats.Trend.Direction != TrendInsufficient {
		t.Errorf("Trend = %v, want insufficient data", stats.Trend.Direction)
	}
	if stats.Hourly[9] != 4 || stats.Hourly[10] != 1 || stats.Weekday[time.Monday] != 5 {
		t.Errorf("distributions hourly=%v weekday=%v", stats.Hourly, stats.Weekday)
	}
}

func TestComputeConversationStats_IdentityFallback(t *testing.T) {
	stats := ComputeConversationStats(bobScenario(), "someone-else", DefaultOptions())
	if stats.You != "bob" {
		t.Errorf("You = %q, want fallback to first sender bob", stats.You)
	}
	if stats.Initiators.You != 1 {
		t.Errorf("Initiators.You = %d, want 1", stats.Initiators.You)
	}
}

func TestComputeConversationStats_Empty(t *testing.T) {
	stats := ComputeConversationStats(internal.NewConversation("nobody", nil), "me", DefaultOptions())
	if stats.TotalMessages != 0 || stats.BalanceScore != 0 || stats.ConsistencyScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	if stats.Category != CategoryDormant || stats.Trend.Direction != TrendInsufficient {
		t.Errorf("empty conversation: category %v trend %v", stats.Category, stats.Trend.Direction)
	}
	if nilStats := ComputeConversationStats(nil, "me", DefaultOptions()); nilStats.TotalMessages != 0 {
		t.Errorf("nil conversation = %+v", nilStats)
	}
}

func TestComputeConversationStats_DoesNotMutate(t *testing.T) {
	conv := bobScenario()
	before := make([]internal.Message, len(conv.Messages))
	copy(before, conv.Messages)

	ComputeConversationStats(conv, "you", DefaultOptions())

	for i := range before {
		if before[i].Timestamp != conv.Messages[i].Timestamp || before[i].Content != conv.Messages[i].Content {
			t.Fatalf("message %d changed", i)
		}
	}
}

func TestComputeOverview(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	convs := map[string]*internal.Conversation{
		"bob": bobScenario(),
		"carol": internal.CreateTestConversation("carol",
			internal.RawMessage{Date: "2024-05-30 10:00:00", From: "carol", Content: "hello"},
			internal.RawMessage{Date: "2024-05-30 11:00:00", From: "you", Content: "hi"},
		),
	}
	stats := make(map[string]*ConversationStats)
	for partner, conv := range convs {
		stats[partner] = ComputeConversationStats(conv, "you", opts)
	}

	o := ComputeOverview("you", convs, stats)
	if o.TotalConversations != 2 || o.TotalMessages != 7 || o.YourMessages != 3 {
		t.Errorf("totals = %d convs, %d msgs, %d yours", o.TotalConversations, o.TotalMessages, o.YourMessages)
	}
	if o.Categories[CategoryActive] != 1 || o.Categories[CategoryDormant] != 1 || o.Categories[CategoryRecent] != 0 {
		t.Errorf("Categories = %v", o.Categories)
	}
	if len(o.TopPartners) != 2 || o.TopPartners[0].Partner != "bob" {
		t.Errorf("TopPartners = %+v", o.TopPartners)
	}
	if len(o.Density) != 2 {
		t.Errorf("Density = %+v", o.Density)
	}
	if o.Peak.Hour != 9 || o.Peak.HourCount != 4 {
		t.Errorf("peak hour = %d (%d), want 9 (4)", o.Peak.Hour, o.Peak.HourCount)
	}
	if !o.FirstMessage.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("FirstMessage = %v", o.FirstMessage)
	}
	if o.StyleClusters[StyleQuickChatter] == nil {
		t.Error("every style should have an entry")
	}
}

func TestCharts(t *testing.T) {
	stats := ComputeConversationStats(bobScenario(), "you", DefaultOptions())
	charts := Charts(stats)
	if len(charts) != 4 {
		t.Fatalf("Charts() returned %d datasets, want 4", len(charts))
	}
	for _, c := range charts {
		for _, s := range c.Series {
			if len(s.Values) != len(c.Labels) {
				t.Errorf("%s: series %s has %d values for %d labels", c.Title, s.Name, len(s.Values), len(c.Labels))
			}
		}
	}
	if charts[1].Labels[0] != "Sun" {
		t.Errorf("weekday labels start with %s", charts[1].Labels[0])
	}
	timeline := charts[2]
	if timeline.Series[0].Name != "you" || timeline.Series[1].Name != "bob" {
		t.Errorf("timeline series = %s, %s", timeline.Series[0].Name, timeline.Series[1].Name)
	}
}
