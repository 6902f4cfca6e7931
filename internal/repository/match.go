package repository

import (
	"context"
	"fmt"
	"sync"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

const matchesKey = "games"

type MatchRepository struct {
	store  *Store
	logger zerolog.Logger
	mu     sync.Mutex
}

func NewMatchRepository(store *Store, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{store: store, logger: logger}
}

// List returns the matches in stored (insertion) order.
func (r *MatchRepository) List(ctx context.Context) ([]domain.Match, error) {
	var matches []domain.Match
	if _, err := r.store.GetJSON(ctx, matchesKey, &matches); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	return matches, nil
}

func (r *MatchRepository) Append(ctx context.Context, match domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.List(ctx)
	if err != nil {
		return err
	}
	matches = append(matches, match)
	if err := r.store.PutJSON(ctx, matchesKey, matches); err != nil {
		return err
	}

	r.logger.Info().Int64("id", match.ID).Str("combo", match.ComboLabel()).Msg("match added")
	return nil
}

// Update applies fn to the match with the given id and persists the
// collection. The id itself is immutable.
func (r *MatchRepository) Update(ctx context.Context, id int64, fn func(*domain.Match)) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range matches {
		if matches[i].ID == id {
			fn(&matches[i])
			matches[i].ID = id
			if err := r.store.PutJSON(ctx, matchesKey, matches); err != nil {
				return nil, err
			}
			updated := matches[i]
			r.logger.Info().Int64("id", id).Msg("match updated")
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrMatchNotFound, id)
}

// Delete removes exactly the match with the given id, leaving the
// order and content of all others unchanged.
func (r *MatchRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := matches[:0]
	found := false
	for _, m := range matches {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return fmt.Errorf("%w: %d", domain.ErrMatchNotFound, id)
	}

	if err := r.store.PutJSON(ctx, matchesKey, kept); err != nil {
		return err
	}
	r.logger.Info().Int64("id", id).Int("remaining", len(kept)).Msg("match deleted")
	return nil
}
