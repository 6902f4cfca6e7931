package service

import (
	"context"
	"sort"
	"strings"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/league"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	matches *repository.MatchRepository
	players *repository.PlayerRepository
	logger  zerolog.Logger
}

func NewStatsService(matches *repository.MatchRepository, players *repository.PlayerRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{matches: matches, players: players, logger: logger}
}

type TeammateCount struct {
	Key   string
	Name  string
	Count int
}

type PlayerStatsView struct {
	Key       string
	Name      string
	Wins      int
	Losses    int
	SetsWon   int
	SetsLost  int
	WinRate   float64
	Teammates []TeammateCount
}

type SummaryView struct {
	// Season is the applied calendar-year filter, 0 for all seasons.
	Season        int
	Seasons       []int
	TotalMatches  int
	MostUsedCombo string
	Players       []PlayerStatsView
}

// Summary aggregates the (optionally season-filtered) match
// collection into per-player statistics.
func (s *StatsService) Summary(ctx context.Context, season int) (*SummaryView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	matches, players, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	seasons := league.Seasons(matches)
	if season != 0 {
		matches = league.FilterSeason(matches, season)
	}

	agg := league.Aggregate(matches)
	view := &SummaryView{
		Season:        season,
		Seasons:       seasons,
		TotalMatches:  agg.TotalMatches,
		MostUsedCombo: agg.MostUsedCombo,
		Players:       make([]PlayerStatsView, 0, len(agg.Players)),
	}

	// Stats keys are lowercased canonical refs, so one lowercased
	// email index resolves every registered player.
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[strings.ToLower(p.Email)] = p.Name
	}
	displayName := func(key string) string {
		if name, ok := names[key]; ok {
			return name
		}
		return agg.DisplayNames[key]
	}

	for key, ps := range agg.Players {
		pv := PlayerStatsView{
			Key:      key,
			Name:     displayName(key),
			Wins:     ps.Wins,
			Losses:   ps.Losses,
			SetsWon:  ps.SetsWon,
			SetsLost: ps.SetsLost,
			WinRate:  ps.WinRate(),
		}
		for mateKey, count := range ps.Teammates {
			pv.Teammates = append(pv.Teammates, TeammateCount{
				Key:   mateKey,
				Name:  displayName(mateKey),
				Count: count,
			})
		}
		sort.Slice(pv.Teammates, func(i, j int) bool {
			if pv.Teammates[i].Count != pv.Teammates[j].Count {
				return pv.Teammates[i].Count > pv.Teammates[j].Count
			}
			return pv.Teammates[i].Key < pv.Teammates[j].Key
		})
		view.Players = append(view.Players, pv)
	}
	sort.Slice(view.Players, func(i, j int) bool {
		return view.Players[i].Key < view.Players[j].Key
	})

	s.logger.Debug().
		Int("season", season).
		Int("matches", view.TotalMatches).
		Int("players", len(view.Players)).
		Msg("stats summary computed")
	return view, nil
}

// HeadToHead lists the matches in which both identifiers appear,
// newest first, optionally restricted to a season.
func (s *StatsService) HeadToHead(ctx context.Context, a, b string, season int) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	matches, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}
	if season != 0 {
		matches = league.FilterSeason(matches, season)
	}
	return league.HeadToHead(matches, a, b), nil
}

type RecordView struct {
	Player  domain.Player
	Wins    int
	Losses  int
	WinRate float64
	Recent  []domain.Match
	History []domain.Match
}

// PlayerRecord derives a registered player's win/loss record and match
// history from stored sets.
func (s *StatsService) PlayerRecord(ctx context.Context, email string) (*RecordView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.players.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	matches, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}

	history := league.MatchesFor(matches, player.Email)
	rec := league.RecordFor(matches, player.Email)

	recent := history
	if len(recent) > constants.RecentMatchLimit {
		recent = recent[:constants.RecentMatchLimit]
	}

	return &RecordView{
		Player:  *player,
		Wins:    rec.Wins,
		Losses:  rec.Losses,
		WinRate: rec.WinRate(),
		Recent:  recent,
		History: history,
	}, nil
}

// load reads the match and player collections in parallel; they live
// under independent store keys.
func (s *StatsService) load(ctx context.Context) ([]domain.Match, []domain.Player, error) {
	g, gCtx := errgroup.WithContext(ctx)
	var matches []domain.Match
	var players []domain.Player

	g.Go(func() error {
		var err error
		matches, err = s.matches.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.players.List(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return matches, players, nil
}
