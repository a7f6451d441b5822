package internal

import (
	"fmt"
	"time"
)

// CreateTestMessage builds a normalized message from an export style date.
// It panics on a malformed date and is meant for tests only.
func CreateTestMessage(date, from, content string) Message {
	msg, err := NewNormalizer(0).NormalizeMessage(RawMessage{Date: date, From: from, Content: content})
	if err != nil {
		panic(fmt.Sprintf("CreateTestMessage(%q): %v", date, err))
	}
	return msg
}

// CreateTestMessageAt builds a text message at an exact time
func CreateTestMessageAt(ts time.Time, from, content string) Message {
	c := ClassifyContent(content)
	msg := NewMessage(ts, from, c.Content, c.Type)
	msg.Payload = c.Payload
	return msg
}

// CreateTestConversation builds a conversation from raw records
func CreateTestConversation(partner string, raws ...RawMessage) *Conversation {
	messages := make([]Message, 0, len(raws))
	for _, raw := range raws {
		messages = append(messages, CreateTestMessage(raw.Date, raw.From, raw.Content))
	}
	return NewConversation(partner, messages)
}

// CreateAlternatingMessages builds count messages starting at start, spaced
// by gap and alternating between the two senders
func CreateAlternatingMessages(start time.Time, gap time.Duration, count int, first, second string) []Message {
	messages := make([]Message, 0, count)
	for i := 0; i < count; i++ {
		from := first
		if i%2 == 1 {
			from = second
		}
		messages = append(messages, CreateTestMessageAt(start.Add(time.Duration(i)*gap), from, fmt.Sprintf("message %d", i)))
	}
	return messages
}
