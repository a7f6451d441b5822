package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	keyDirectMessage  = "Direct Message"
	keyDirectMessages = "Direct Messages"
	keyChatHistory    = "ChatHistory"

	conversationPrefix = "Chat History with "
	conversationSuffix = ":"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IngestResult is the outcome of reading an export
type IngestResult struct {
	Conversations Conversations
	// Dropped counts invalid records per partner.
	Dropped map[string]int
	// Omitted lists partners left without a single valid message.
	Omitted []string
}

// DroppedTotal sums dropped records across partners
func (r *IngestResult) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// Ingest validates an export and extracts per-partner messages
func Ingest(data []byte) (Conversations, error) {
	result, err := IngestDetailed(data)
	if err != nil {
		return nil, err
	}
	return result.Conversations, nil
}

// IngestDetailed is Ingest plus bookkeeping about dropped records
func IngestDetailed(data []byte) (*IngestResult, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Source: "json", Key: "export", Err: err}
	}

	history, err := descend(data, keyDirectMessage, keyDirectMessages, keyChatHistory)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(history))
	for key := range history {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	chatPath := strings.Join([]string{keyDirectMessage, keyDirectMessages, keyChatHistory}, " > ")
	result := &IngestResult{
		Conversations: make(Conversations),
		Dropped:       make(map[string]int),
	}

	for _, key := range keys {
		partner, ok := partnerFromKey(key)
		if !ok {
			return nil, &SchemaError{
				Path:   chatPath + " > " + key,
				Reason: fmt.Sprintf("conversation key must match %q", conversationPrefix+"<name>"+conversationSuffix),
			}
		}

		var elements []json.RawMessage
		if err := json.Unmarshal(history[key], &elements); err != nil || elements == nil {
			return nil, &SchemaError{Path: chatPath + " > " + key, Reason: "value is not a list"}
		}

		messages := make([]RawMessage, 0, len(elements))
		for i, element := range elements {
			msg, verr := validateRecord(partner, i, element)
			if verr != nil {
				LogDebug("%v", verr)
				result.Dropped[partner]++
				continue
			}
			messages = append(messages, msg)
		}

		if len(messages) == 0 {
			result.Omitted = append(result.Omitted, partner)
			continue
		}
		result.Conversations[partner] = messages
	}

	if n := result.DroppedTotal(); n > 0 {
		LogInfo("Dropped %d invalid message record(s)", n)
	}
	return result, nil
}

// descend walks a fixed chain of object keys
func descend(data []byte, path ...string) (map[string]json.RawMessage, error) {
	current := json.RawMessage(data)
	var walked []string
	for _, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil || obj == nil {
			where := strings.Join(walked, " > ")
			if where == "" {
				where = "$"
			}
			return nil, &SchemaError{Path: where, Reason: "expected an object"}
		}
		walked = append(walked, key)
		next, ok := obj[key]
		if !ok {
			return nil, &SchemaError{Path: strings.Join(walked, " > "), Reason: fmt.Sprintf("missing key %q", key)}
		}
		current = next
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(current, &obj); err != nil || obj == nil {
		return nil, &SchemaError{Path: strings.Join(walked, " > "), Reason: "expected an object"}
	}
	return obj, nil
}

func partnerFromKey(key string) (string, bool) {
	if len(key) <= len(conversationPrefix)+len(conversationSuffix) {
		return "", false
	}
	if !strings.HasPrefix(key, conversationPrefix) || !strings.HasSuffix(key, conversationSuffix) {
		return "", false
	}
	return key[len(conversationPrefix) : len(key)-len(conversationSuffix)], true
}

// validateRecord checks one element of a conversation list
func validateRecord(partner string, index int, element json.RawMessage) (RawMessage, *ValidationError) {
	invalid := func(reason string) *ValidationError {
		return &ValidationError{Partner: partner, Index: index, Reason: reason}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil || fields == nil {
		return RawMessage{}, invalid("not an object")
	}

	date, ok := stringField(fields, "Date")
	if !ok || date == "" {
		return RawMessage{}, invalid("Date must be a non-empty string")
	}
	from, ok := stringField(fields, "From")
	if !ok || from == "" {
		return RawMessage{}, invalid("From must be a non-empty string")
	}

	rawContent, present := fields["Content"]
	if !present {
		return RawMessage{}, invalid("Content is missing")
	}
	var content string
	if !bytes.Equal(bytes.TrimSpace(rawContent), []byte("null")) {
		if err := json.Unmarshal(rawContent, &content); err != nil {
			return RawMessage{}, invalid("Content must be a string")
		}
	}

	return RawMessage{Date: date, From: from, Content: content}, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
