package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

const playersKey = "players"

type PlayerRepository struct {
	store  *Store
	logger zerolog.Logger
	mu     sync.Mutex
}

func NewPlayerRepository(store *Store, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{store: store, logger: logger}
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	var players []domain.Player
	if _, err := r.store.GetJSON(ctx, playersKey, &players); err != nil {
		return nil, err
	}
	if players == nil {
		players = []domain.Player{}
	}
	return players, nil
}

// FindByEmail looks a player up by email, case-insensitively.
func (r *PlayerRepository) FindByEmail(ctx context.Context, email string) (*domain.Player, error) {
	players, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if strings.EqualFold(players[i].Email, email) {
			return &players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, email)
}

// Append adds a new player to the collection and persists the whole
// collection.
func (r *PlayerRepository) Append(ctx context.Context, player domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.List(ctx)
	if err != nil {
		return err
	}
	players = append(players, player)
	if err := r.store.PutJSON(ctx, playersKey, players); err != nil {
		return err
	}

	r.logger.Info().Str("email", player.Email).Int("count", len(players)).Msg("player added")
	return nil
}

// Update applies fn to the player with the given email (matched
// case-insensitively) and persists the collection. Returns the updated
// record.
func (r *PlayerRepository) Update(ctx context.Context, email string, fn func(*domain.Player)) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range players {
		if strings.EqualFold(players[i].Email, email) {
			fn(&players[i])
			if err := r.store.PutJSON(ctx, playersKey, players); err != nil {
				return nil, err
			}
			updated := players[i]
			r.logger.Info().Str("email", updated.Email).Msg("player updated")
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, email)
}
