package service

import (
	"context"
	"time"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/league"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type MatchService struct {
	matches *repository.MatchRepository
	logger  zerolog.Logger
}

func NewMatchService(matches *repository.MatchRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{matches: matches, logger: logger}
}

// Record validates a proposed match and appends it. Acceptance is
// all-or-nothing; a rejected match leaves no state behind.
func (s *MatchService) Record(ctx context.Context, submitter domain.Player, in league.MatchInput) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	match, err := league.BuildMatch(in, submitter, time.Now())
	if err != nil {
		s.logger.Info().Err(err).Str("combo", in.Combo).Msg("match rejected")
		return nil, err
	}

	if err := s.matches.Append(ctx, *match); err != nil {
		return nil, err
	}
	return match, nil
}

// List returns the match collection in stored order.
func (s *MatchService) List(ctx context.Context) ([]domain.Match, error) {
	return s.matches.List(ctx)
}

// ListFor returns the matches an identifier appears in, newest first.
func (s *MatchService) ListFor(ctx context.Context, identifier string) ([]domain.Match, error) {
	matches, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}
	return league.MatchesFor(matches, identifier), nil
}

// LastFor returns the most recent match for an identifier, nil when
// there is none.
func (s *MatchService) LastFor(ctx context.Context, identifier string) (*domain.Match, error) {
	matches, err := s.ListFor(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// UpdateSets replaces a stored match's sets in place after
// re-validating them. The match id is immutable.
func (s *MatchService) UpdateSets(ctx context.Context, id int64, sets []domain.SetScore) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	played, err := league.ValidateSets(sets)
	if err != nil {
		s.logger.Info().Err(err).Int64("id", id).Msg("set update rejected")
		return nil, err
	}

	return s.matches.Update(ctx, id, func(m *domain.Match) {
		m.Sets = played
	})
}

// Delete removes exactly the match with the given id.
func (s *MatchService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.matches.Delete(ctx, id)
}
