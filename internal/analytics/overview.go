package analytics

import (
	"sort"
	"time"

	"github.com/iksnae/dm-insights/internal"
)

// PartnerCount pairs a partner with a message total
type PartnerCount struct {
	Partner  string `json:"partner" yaml:"partner"`
	Messages int    `json:"messages" yaml:"messages"`
}

// Overview aggregates every conversation of an export
type Overview struct {
	Identity           string                       `json:"identity" yaml:"identity"`
	TotalConversations int                          `json:"total_conversations" yaml:"total_conversations"`
	TotalMessages      int                          `json:"total_messages" yaml:"total_messages"`
	YourMessages       int                          `json:"your_messages" yaml:"your_messages"`
	FirstMessage       time.Time                    `json:"first_message" yaml:"first_message"`
	LastMessage        time.Time                    `json:"last_message" yaml:"last_message"`
	Categories         map[Category]int             `json:"categories" yaml:"categories"`
	ContentMix         map[internal.ContentType]int `json:"content_mix" yaml:"content_mix"`
	TopPartners        []PartnerCount               `json:"top_partners" yaml:"top_partners"`
	Density            []DensityEntry               `json:"density" yaml:"density"`
	Peak               PeakActivity                 `json:"peak" yaml:"peak"`
	StyleClusters      map[Style][]string           `json:"style_clusters" yaml:"style_clusters"`
}

// ComputeOverview combines per-conversation statistics with the measures
// that only make sense across conversations
func ComputeOverview(identity string, conversations map[string]*internal.Conversation, stats map[string]*ConversationStats) *Overview {
	o := &Overview{
		Identity:           identity,
		TotalConversations: len(conversations),
		Categories:         make(map[Category]int, len(Categories)),
		ContentMix:         ContentMix(nil),
		StyleClusters:      make(map[Style][]string, len(Styles)),
	}
	for _, c := range Categories {
		o.Categories[c] = 0
	}
	for _, s := range Styles {
		o.StyleClusters[s] = []string{}
	}

	partners := make([]string, 0, len(stats))
	for partner := range stats {
		partners = append(partners, partner)
	}
	sort.Strings(partners)

	for _, partner := range partners {
		s := stats[partner]
		o.TotalMessages += s.TotalMessages
		o.YourMessages += s.YourMessages
		o.Categories[s.Category]++
		for t, n := range s.ContentMix {
			o.ContentMix[t] += n
		}
		if !s.FirstMessage.IsZero() && (o.FirstMessage.IsZero() || s.FirstMessage.Before(o.FirstMessage)) {
			o.FirstMessage = s.FirstMessage
		}
		if s.LastMessage.After(o.LastMessage) {
			o.LastMessage = s.LastMessage
		}
		for _, style := range s.Styles {
			o.StyleClusters[style] = append(o.StyleClusters[style], partner)
		}
		o.TopPartners = append(o.TopPartners, PartnerCount{Partner: partner, Messages: s.TotalMessages})
	}

	sort.SliceStable(o.TopPartners, func(i, j int) bool {
		return o.TopPartners[i].Messages > o.TopPartners[j].Messages
	})
	o.Density = DensityRanking(conversations)
	o.Peak = ComputePeakActivity(conversations)
	return o
}
