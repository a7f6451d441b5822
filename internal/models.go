package internal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RawMessage is a single record from the export's ChatHistory lists
type RawMessage struct {
	Date    string `json:"Date"`
	From    string `json:"From"`
	Content string `json:"Content"`
}

// Conversations maps a partner name to its raw messages
type Conversations map[string][]RawMessage

// Partners returns the partner names in sorted order
func (c Conversations) Partners() []string {
	partners := make([]string, 0, len(c))
	for name := range c {
		partners = append(partners, name)
	}
	sort.Strings(partners)
	return partners
}

// TotalMessages counts raw messages across all conversations
func (c Conversations) TotalMessages() int {
	total := 0
	for _, msgs := range c {
		total += len(msgs)
	}
	return total
}

// ContentType classifies a normalized message. Decided once, at normalization.
type ContentType string

const (
	ContentText    ContentType = "text"
	ContentLink    ContentType = "link"
	ContentMedia   ContentType = "media"
	ContentSticker ContentType = "sticker"
	ContentEmpty   ContentType = "empty"
)

// ContentTypes lists every content type in display order
var ContentTypes = []ContentType{ContentText, ContentLink, ContentMedia, ContentSticker, ContentEmpty}

// Payload carries the data extracted while classifying content
type Payload struct {
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// Message is a normalized message. Calendar fields are derived from Timestamp
// and never edited independently.
type Message struct {
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
	From      string       `json:"from" yaml:"from"`
	Content   string       `json:"content" yaml:"content"`
	Type      ContentType  `json:"type" yaml:"type"`
	Payload   *Payload     `json:"payload,omitempty" yaml:"payload,omitempty"`
	Year      int          `json:"year" yaml:"year"`
	Month     time.Month   `json:"month" yaml:"month"`
	Day       int          `json:"day" yaml:"day"`
	Hour      int          `json:"hour" yaml:"hour"`
	ISOYear   int          `json:"iso_year" yaml:"iso_year"`
	ISOWeek   int          `json:"iso_week" yaml:"iso_week"`
	Weekday   time.Weekday `json:"weekday" yaml:"weekday"`
}

// NewMessage builds a Message and fills in its calendar fields
func NewMessage(ts time.Time, from, content string, typ ContentType) Message {
	ts = ts.UTC()
	isoYear, isoWeek := ts.ISOWeek()
	return Message{
		Timestamp: ts,
		From:      from,
		Content:   content,
		Type:      typ,
		Year:      ts.Year(),
		Month:     ts.Month(),
		Day:       ts.Day(),
		Hour:      ts.Hour(),
		ISOYear:   isoYear,
		ISOWeek:   isoWeek,
		Weekday:   ts.Weekday(),
	}
}

// DateKey returns the calendar date as YYYY-MM-DD
func (m Message) DateKey() string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), m.Day)
}

// WeekKey returns the ISO week key, e.g. 2024-W03
func (m Message) WeekKey() string {
	return WeekKey(m.ISOYear, m.ISOWeek)
}

// MonthKey returns the calendar month key, e.g. 2024-03
func (m Message) MonthKey() string {
	return MonthKey(m.Year, m.Month)
}

// Date returns midnight of the message's calendar day
func (m Message) Date() time.Time {
	return time.Date(m.Year, m.Month, m.Day, 0, 0, 0, 0, time.UTC)
}

// Words counts whitespace separated words in the content
func (m Message) Words() int {
	return len(strings.Fields(m.Content))
}

// IsQuestion reports whether the content asks something
func (m Message) IsQuestion() bool {
	return strings.Contains(m.Content, "?")
}

// Conversation holds one partner's normalized messages and their clusters.
// Messages are sorted by timestamp when the conversation is built and the
// value is not modified afterwards.
type Conversation struct {
	Partner      string                  `json:"partner" yaml:"partner"`
	Messages     []Message               `json:"messages" yaml:"messages"`
	WeekClusters map[string]*WeekCluster `json:"week_clusters" yaml:"week_clusters"`
	MonthGroups  map[string]*MonthGroup  `json:"month_groups" yaml:"month_groups"`
}

// NewConversation sorts the messages and derives week and month clusters
func NewConversation(partner string, messages []Message) *Conversation {
	sorted := make([]Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	weeks := ClusterByWeek(sorted)
	return &Conversation{
		Partner:      partner,
		Messages:     sorted,
		WeekClusters: weeks,
		MonthGroups:  GroupByMonth(weeks),
	}
}

// FirstMessage returns a pointer to the earliest message, or nil
func (c *Conversation) FirstMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[0]
}

// LastMessage returns a pointer to the latest message, or nil
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// Senders returns the distinct senders in order of first appearance
func (c *Conversation) Senders() []string {
	seen := make(map[string]bool)
	var senders []string
	for _, msg := range c.Messages {
		if !seen[msg.From] {
			seen[msg.From] = true
			senders = append(senders, msg.From)
		}
	}
	return senders
}

// WeekKeys returns the week cluster keys in chronological order
func (c *Conversation) WeekKeys() []string {
	return sortedKeys(c.WeekClusters)
}

// MonthKeys returns the month group keys in chronological order
func (c *Conversation) MonthKeys() []string {
	return sortedKeys(c.MonthGroups)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Keys are zero padded so lexical order is chronological.
	sort.Strings(keys)
	return keys
}
