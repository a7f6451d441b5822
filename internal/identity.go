package internal

import "sort"

// DetectCandidateIdentities lists every sender in the export, most likely
// owner first. The owner of an export takes part in every conversation, so
// senders are ranked by how many conversations they appear in, then by total
// messages, then by name.
func DetectCandidateIdentities(conversations Conversations) []string {
	type tally struct {
		conversations int
		messages      int
	}
	counts := make(map[string]*tally)

	for _, msgs := range conversations {
		seen := make(map[string]bool)
		for _, msg := range msgs {
			t, ok := counts[msg.From]
			if !ok {
				t = &tally{}
				counts[msg.From] = t
			}
			t.messages++
			if !seen[msg.From] {
				seen[msg.From] = true
				t.conversations++
			}
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := counts[names[i]], counts[names[j]]
		if a.conversations != b.conversations {
			return a.conversations > b.conversations
		}
		if a.messages != b.messages {
			return a.messages > b.messages
		}
		return names[i] < names[j]
	})
	return names
}

// ResolveIdentity returns who counts as "you" in a conversation: the chosen
// identity if it ever sends a message there, otherwise the first sender.
func ResolveIdentity(messages []Message, identity string) string {
	if len(messages) == 0 {
		return identity
	}
	for _, msg := range messages {
		if msg.From == identity {
			return identity
		}
	}
	return messages[0].From
}
