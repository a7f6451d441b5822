package analytics

import (
	"time"

	"github.com/iksnae/dm-insights/internal"
)

// ConversationStats is everything derived for one partner
type ConversationStats struct {
	Partner string `json:"partner" yaml:"partner"`
	// You is the identity resolved for this conversation.
	You string `json:"you" yaml:"you"`

	TotalMessages int            `json:"total_messages" yaml:"total_messages"`
	YourMessages  int            `json:"your_messages" yaml:"your_messages"`
	TheirMessages int            `json:"their_messages" yaml:"their_messages"`
	YourPercent   float64        `json:"your_percent" yaml:"your_percent"`
	SenderCounts  map[string]int `json:"sender_counts" yaml:"sender_counts"`
	WeekCount     int            `json:"week_count" yaml:"week_count"`
	MonthCount    int            `json:"month_count" yaml:"month_count"`

	FirstMessage    time.Time `json:"first_message" yaml:"first_message"`
	LastMessage     time.Time `json:"last_message" yaml:"last_message"`
	SpanDays        int       `json:"span_days" yaml:"span_days"`
	DaysActive      int       `json:"days_active" yaml:"days_active"`
	DaysSinceLast   int       `json:"days_since_last" yaml:"days_since_last"`
	MessagesPerDay  float64   `json:"messages_per_day" yaml:"messages_per_day"`
	AvgPerActiveDay float64   `json:"avg_per_active_day" yaml:"avg_per_active_day"`

	ContentMix         map[internal.ContentType]int `json:"content_mix" yaml:"content_mix"`
	LengthDistribution []LengthBucket                `json:"length_distribution" yaml:"length_distribution"`
	Text               TextMetrics                   `json:"text" yaml:"text"`

	Hourly   [24]int      `json:"hourly" yaml:"hourly"`
	Weekday  [7]int       `json:"weekday" yaml:"weekday"`
	Timeline []MonthPoint `json:"timeline" yaml:"timeline"`

	ResponseTimes ResponseTimes  `json:"response_times" yaml:"response_times"`
	Initiators    InitiatorStats `json:"initiators" yaml:"initiators"`
	Bursts        []Burst        `json:"bursts" yaml:"bursts"`
	Streaks       StreakStats    `json:"streaks" yaml:"streaks"`
	Gaps          []Gap          `json:"gaps" yaml:"gaps"`

	BalanceScore     float64 `json:"balance_score" yaml:"balance_score"`
	ConsistencyScore float64 `json:"consistency_score" yaml:"consistency_score"`

	Category   Category    `json:"category" yaml:"category"`
	Milestones []Milestone `json:"milestones" yaml:"milestones"`
	Trend      Trend       `json:"trend" yaml:"trend"`
	Styles     []Style     `json:"styles" yaml:"styles"`
}

// ComputeConversationStats derives the statistics of one conversation. The
// identity is resolved against the conversation's senders before use.
func ComputeConversationStats(conv *internal.Conversation, identity string, opts Options) *ConversationStats {
	opts = opts.normalize()
	stats := &ConversationStats{
		SenderCounts: map[string]int{},
		ContentMix:   ContentMix(nil),
		Category:     CategoryDormant,
	}
	if conv == nil {
		stats.LengthDistribution = LengthDistribution(nil)
		stats.Trend = Trend{Direction: TrendInsufficient}
		return stats
	}

	messages := conv.Messages
	you := internal.ResolveIdentity(messages, identity)
	stats.Partner = conv.Partner
	stats.You = you

	stats.TotalMessages = len(messages)
	stats.SenderCounts = SenderCounts(messages)
	stats.YourMessages = stats.SenderCounts[you]
	stats.TheirMessages = stats.TotalMessages - stats.YourMessages
	stats.YourPercent = round2(percent(stats.YourMessages, stats.TotalMessages))
	stats.WeekCount = len(conv.WeekClusters)
	stats.MonthCount = len(conv.MonthGroups)

	if first := conv.FirstMessage(); first != nil {
		stats.FirstMessage = first.Timestamp
	}
	if last := conv.LastMessage(); last != nil {
		stats.LastMessage = last.Timestamp
	}
	stats.SpanDays = SpanDays(messages)
	stats.DaysActive = DaysActive(messages)
	stats.DaysSinceLast = DaysSince(stats.LastMessage, opts.Now)
	stats.MessagesPerDay = round2(MessagesPerDay(messages))
	if stats.DaysActive > 0 {
		stats.AvgPerActiveDay = round2(float64(stats.TotalMessages) / float64(stats.DaysActive))
	}

	stats.ContentMix = ContentMix(messages)
	stats.LengthDistribution = LengthDistribution(messages)
	stats.Text = ComputeTextMetrics(messages)

	stats.Hourly = HourlyDistribution(messages)
	stats.Weekday = WeekdayDistribution(messages)
	stats.Timeline = MonthlyTimeline(messages, you)

	stats.ResponseTimes = ComputeResponseTimes(messages, you)
	stats.Initiators = ComputeInitiators(messages, you, opts.EpisodeGap)
	stats.Bursts = DetectBursts(messages, opts.BurstGap, opts.BurstMinSize)
	stats.Streaks = ComputeStreaks(messages, opts.Now)
	stats.Gaps = FindGaps(messages, opts.GapThreshold, opts.TopGaps)

	stats.BalanceScore = BalanceScore(messages, you)
	stats.ConsistencyScore = ConsistencyScore(messages)

	stats.Category = Categorize(stats.LastMessage, opts.Now, opts.ActiveDays, opts.RecentDays)
	stats.Milestones = ComputeMilestones(messages, opts.Now)
	stats.Trend = ComputeTrend(messages)
	stats.Styles = ClassifyStyle(StyleInput{
		Total:           stats.TotalMessages,
		MediaAndSticker: stats.ContentMix[internal.ContentMedia] + stats.ContentMix[internal.ContentSticker],
		AvgWords:        stats.Text.AvgWords,
		QuestionRatio:   stats.Text.QuestionRatio,
		MessagesPerDay:  MessagesPerDay(messages),
	})
	return stats
}
