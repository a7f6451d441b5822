package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/iksnae/dm-insights/internal"
)

// ErrNothingStaged is returned when an identity is selected before any upload
var ErrNothingStaged = errors.New("no upload to process")

// Holder owns the active State. Uploads are staged until an identity is
// selected; a failed step never replaces what the Holder already has.
type Holder struct {
	mu         sync.RWMutex
	opts       Options
	current    *State
	staged     internal.Conversations
	candidates []string
}

// NewHolder creates an empty Holder
func NewHolder(opts Options) *Holder {
	return &Holder{opts: opts}
}

// Upload ingests an export and stages it, returning the candidate identities
// in order of likelihood
func (h *Holder) Upload(data []byte) ([]string, error) {
	conversations, candidates, err := ingest(data)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.staged = conversations
	h.candidates = candidates
	return candidates, nil
}

// SelectIdentity processes the staged upload as identity and makes the
// result the current State
func (h *Holder) SelectIdentity(ctx context.Context, identity string) (*State, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, errors.New("identity must not be empty")
	}

	h.mu.RLock()
	staged, candidates, opts := h.staged, h.candidates, h.opts
	h.mu.RUnlock()
	if staged == nil {
		return nil, ErrNothingStaged
	}

	if !contains(candidates, identity) {
		internal.LogWarn("%q never sends a message; each conversation falls back to its first sender", identity)
	}

	state, err := Process(ctx, staged, identity, opts)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = state
	return state, nil
}

// Load ingests and processes an export in one step. An empty identity picks
// the most likely candidate. Nothing is staged unless processing succeeds.
func (h *Holder) Load(ctx context.Context, data []byte, identity string) (*State, error) {
	conversations, candidates, err := ingest(data)
	if err != nil {
		return nil, err
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		identity = candidates[0]
		internal.LogInfo("Using detected identity %q", identity)
	}

	h.mu.RLock()
	opts := h.opts
	h.mu.RUnlock()

	state, err := Process(ctx, conversations, identity, opts)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.staged = conversations
	h.candidates = candidates
	h.current = state
	return state, nil
}

func ingest(data []byte) (internal.Conversations, []string, error) {
	conversations, err := internal.Ingest(data)
	if err != nil {
		return nil, nil, err
	}
	if len(conversations) == 0 {
		return nil, nil, internal.ErrEmptyExport
	}
	return conversations, internal.DetectCandidateIdentities(conversations), nil
}

// Current returns the active State, or nil before the first success
func (h *Holder) Current() *State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Candidates returns the identities detected in the staged upload
func (h *Holder) Candidates() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.candidates))
	copy(out, h.candidates)
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
