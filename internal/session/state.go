// Package session turns an ingested export into an immutable State and holds
// the active one.
package session

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/analytics"
)

// ErrUnknownPartner is returned when a partner has no conversation in the State
var ErrUnknownPartner = errors.New("unknown conversation partner")

// Options configures processing
type Options struct {
	// TimezoneOffset is added to every timestamp, in hours.
	TimezoneOffset float64
	Analytics      analytics.Options
}

// State is the result of processing one upload for one identity. It is never
// modified after Process returns; a new upload produces a new State.
type State struct {
	ID             string                                  `json:"id" yaml:"id"`
	CreatedAt      time.Time                               `json:"created_at" yaml:"created_at"`
	Identity       string                                  `json:"identity" yaml:"identity"`
	TimezoneOffset float64                                 `json:"timezone_offset" yaml:"timezone_offset"`
	Raw            internal.Conversations                  `json:"-" yaml:"-"`
	Conversations  map[string]*internal.Conversation       `json:"-" yaml:"-"`
	Partners       []string                                `json:"partners" yaml:"partners"`
	Stats          map[string]*analytics.ConversationStats `json:"stats" yaml:"stats"`
	Overview       *analytics.Overview                     `json:"overview" yaml:"overview"`
}

type processed struct {
	conv  *internal.Conversation
	stats *analytics.ConversationStats
}

// Process normalizes, clusters and analyzes every conversation. Conversations
// are handled concurrently; the result does not depend on scheduling.
func Process(ctx context.Context, conversations internal.Conversations, identity string, opts Options) (*State, error) {
	if len(conversations) == 0 {
		return nil, internal.ErrEmptyExport
	}

	now := opts.Analytics.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	aopts := opts.Analytics
	aopts.Now = now

	normalizer := internal.NewNormalizer(opts.TimezoneOffset)
	partners := conversations.Partners()
	results := make([]processed, len(partners))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, partner := range partners {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			conv, err := normalizer.NormalizeConversation(partner, conversations[partner])
			if err != nil {
				internal.LogWarn("Skipping conversation with %s: %v", partner, err)
				return nil
			}
			results[i] = processed{
				conv:  conv,
				stats: analytics.ComputeConversationStats(conv, identity, aopts),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	state := &State{
		ID:             uuid.NewString(),
		CreatedAt:      now,
		Identity:       identity,
		TimezoneOffset: opts.TimezoneOffset,
		Raw:            conversations,
		Conversations:  make(map[string]*internal.Conversation, len(partners)),
		Stats:          make(map[string]*analytics.ConversationStats, len(partners)),
	}
	for i, partner := range partners {
		if results[i].conv == nil {
			continue
		}
		state.Conversations[partner] = results[i].conv
		state.Stats[partner] = results[i].stats
		state.Partners = append(state.Partners, partner)
	}
	if len(state.Partners) == 0 {
		return nil, internal.ErrEmptyExport
	}

	state.Overview = analytics.ComputeOverview(identity, state.Conversations, state.Stats)
	internal.LogDebug("Processed %d conversations as %q (session %s)", len(state.Partners), identity, state.ID)
	return state, nil
}

// Conversation looks up a partner's conversation
func (s *State) Conversation(partner string) (*internal.Conversation, error) {
	conv, ok := s.Conversations[partner]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPartner, partner)
	}
	return conv, nil
}

// PartnersByActivity returns partners ordered by message count, busiest
// first. Equal counts are ordered by name.
func (s *State) PartnersByActivity() []string {
	partners := make([]string, len(s.Partners))
	copy(partners, s.Partners)
	sort.SliceStable(partners, func(i, j int) bool {
		ni, nj := len(s.Conversations[partners[i]].Messages), len(s.Conversations[partners[j]].Messages)
		if ni != nj {
			return ni > nj
		}
		return partners[i] < partners[j]
	})
	return partners
}
