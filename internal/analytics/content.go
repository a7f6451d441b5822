package analytics

import (
	"unicode/utf8"

	"github.com/iksnae/dm-insights/internal"
)

// LengthBucket counts text messages whose length falls in a range
type LengthBucket struct {
	Label string `json:"label" yaml:"label"`
	Min   int    `json:"min" yaml:"min"`
	Max   int    `json:"max,omitempty" yaml:"max,omitempty"`
	Count int    `json:"count" yaml:"count"`
}

// lengthBuckets are character ranges; Max 0 means unbounded
var lengthBuckets = []LengthBucket{
	{Label: "1-10", Min: 1, Max: 10},
	{Label: "11-50", Min: 11, Max: 50},
	{Label: "51-100", Min: 51, Max: 100},
	{Label: "101-200", Min: 101, Max: 200},
	{Label: "200+", Min: 201},
}

// ContentMix counts messages per content type; every type is present
func ContentMix(messages []internal.Message) map[internal.ContentType]int {
	mix := make(map[internal.ContentType]int, len(internal.ContentTypes))
	for _, t := range internal.ContentTypes {
		mix[t] = 0
	}
	for _, msg := range messages {
		mix[msg.Type]++
	}
	return mix
}

// LengthDistribution buckets text messages by character count
func LengthDistribution(messages []internal.Message) []LengthBucket {
	buckets := make([]LengthBucket, len(lengthBuckets))
	copy(buckets, lengthBuckets)
	for _, msg := range messages {
		if msg.Type != internal.ContentText {
			continue
		}
		n := utf8.RuneCountInString(msg.Content)
		for i := range buckets {
			if n >= buckets[i].Min && (buckets[i].Max == 0 || n <= buckets[i].Max) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// TextMetrics are word and question statistics over text messages
type TextMetrics struct {
	TextMessages  int     `json:"text_messages" yaml:"text_messages"`
	AvgWords      float64 `json:"avg_words" yaml:"avg_words"`
	QuestionRatio float64 `json:"question_ratio" yaml:"question_ratio"`
}

// ComputeTextMetrics averages words per text message and the share of text
// messages that ask a question, as a percentage
func ComputeTextMetrics(messages []internal.Message) TextMetrics {
	var m TextMetrics
	words, questions := 0, 0
	for _, msg := range messages {
		if msg.Type != internal.ContentText {
			continue
		}
		m.TextMessages++
		words += msg.Words()
		if msg.IsQuestion() {
			questions++
		}
	}
	if m.TextMessages > 0 {
		m.AvgWords = round2(float64(words) / float64(m.TextMessages))
		m.QuestionRatio = round2(percent(questions, m.TextMessages))
	}
	return m
}
