package internal

import (
	"fmt"
	"strings"
	"time"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Normalizer converts raw export records into normalized messages
type Normalizer struct {
	offset time.Duration
}

// NewNormalizer creates a Normalizer that shifts every timestamp by the
// session-wide offset, in hours
func NewNormalizer(offsetHours float64) *Normalizer {
	return &Normalizer{offset: time.Duration(offsetHours * float64(time.Hour))}
}

// ParseTimestamp parses an export timestamp as UTC wall-clock time
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &ParseError{Source: "timestamp", Key: value, Err: lastErr}
}

// NormalizeMessage converts a RawMessage to a Message
func (n *Normalizer) NormalizeMessage(raw RawMessage) (Message, error) {
	ts, err := ParseTimestamp(raw.Date)
	if err != nil {
		return Message{}, err
	}
	ts = ts.Add(n.offset)

	c := ClassifyContent(raw.Content)
	msg := NewMessage(ts, raw.From, c.Content, c.Type)
	msg.Payload = c.Payload
	return msg, nil
}

// NormalizeConversation normalizes a partner's raw messages and builds the
// sorted, clustered Conversation. Records with unparseable dates are dropped.
func (n *Normalizer) NormalizeConversation(partner string, raws []RawMessage) (*Conversation, error) {
	if len(raws) == 0 {
		return nil, fmt.Errorf("conversation with %s has no messages", partner)
	}

	messages := make([]Message, 0, len(raws))
	for i, raw := range raws {
		msg, err := n.NormalizeMessage(raw)
		if err != nil {
			LogDebug("Dropping message %d from %s: %v", i, partner, err)
			continue
		}
		messages = append(messages, msg)
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("conversation with %s has no parseable messages", partner)
	}

	return NewConversation(partner, messages), nil
}

// NormalizeAllConversations normalizes every conversation, skipping those
// left without messages
func (n *Normalizer) NormalizeAllConversations(conversations Conversations) map[string]*Conversation {
	result := make(map[string]*Conversation, len(conversations))
	for _, partner := range conversations.Partners() {
		conv, err := n.NormalizeConversation(partner, conversations[partner])
		if err != nil {
			LogWarn("Skipping conversation: %v", err)
			continue
		}
		result[partner] = conv
	}
	return result
}
