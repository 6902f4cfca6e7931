package repository

import (
	"context"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

const sessionKey = "loggedInUser"

// SessionRepository holds the logged-in player under its own store
// key, as an explicit session object rather than an ambient global.
type SessionRepository struct {
	store  *Store
	logger zerolog.Logger
}

func NewSessionRepository(store *Store, logger zerolog.Logger) *SessionRepository {
	return &SessionRepository{store: store, logger: logger}
}

// Current returns the session player, or nil when logged out. The
// stored value is JSON null after a logout, absent before first login.
func (r *SessionRepository) Current(ctx context.Context) (*domain.Player, error) {
	var player *domain.Player
	if _, err := r.store.GetJSON(ctx, sessionKey, &player); err != nil {
		return nil, err
	}
	return player, nil
}

func (r *SessionRepository) Set(ctx context.Context, player *domain.Player) error {
	if err := r.store.PutJSON(ctx, sessionKey, player); err != nil {
		return err
	}
	r.logger.Info().Str("email", player.Email).Msg("session player set")
	return nil
}

// Clear logs the session out. No other state is touched.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.PutJSON(ctx, sessionKey, nil); err != nil {
		return err
	}
	r.logger.Info().Msg("session cleared")
	return nil
}
