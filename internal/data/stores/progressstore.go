package stores

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/kv"
)

// CompletedKey is the KV key holding the completed-course ID list.
const CompletedKey = "completed_courses"

// ProgressStore implements curriculum.ProgressStore over a kv.KV.
//
// The completed set is serialized as a sorted JSON string list under a
// single key. Per the engine's contract the store never surfaces
// persistence failures: missing or malformed data loads as the empty
// set, and writes are best effort.
type ProgressStore struct {
	kv  kv.KV
	log zerolog.Logger
}

var _ curriculum.ProgressStore = (*ProgressStore)(nil)

// NewProgressStore creates a progress store over the given KV.
func NewProgressStore(store kv.KV, logger zerolog.Logger) *ProgressStore {
	return &ProgressStore{kv: store, log: logger}
}

// Load returns the persisted completed set. Missing or malformed data
// yields the empty set.
func (s *ProgressStore) Load(ctx context.Context) curriculum.CompletedSet {
	var ids []string
	err := s.kv.Get(ctx, CompletedKey, &ids)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return curriculum.NewCompletedSet()
	case err != nil:
		// Corrupt or unreadable data is treated as "no data".
		s.log.Warn().Err(err).Msg("failed to load completed set, starting empty")
		return curriculum.NewCompletedSet()
	}

	return curriculum.NewCompletedSet(ids...)
}

// Save persists the full completed set, replacing prior contents.
// Write failures are logged and swallowed.
func (s *ProgressStore) Save(ctx context.Context, completed curriculum.CompletedSet) {
	if err := s.kv.Set(ctx, CompletedKey, completed.IDs()); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist completed set")
	}
}
