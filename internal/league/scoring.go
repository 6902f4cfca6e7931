package league

import (
	"fmt"

	"league-tracker/internal/domain"
)

const (
	// MaxSets is the most sets a match can record.
	MaxSets = 3
	// SetsToWin is the majority a team must reach for the match to count.
	SetsToWin = 2
)

// Side identifies a match winner.
type Side int

const (
	SideNone Side = iota
	SideTeam1
	SideTeam2
)

func (s Side) String() string {
	switch s {
	case SideTeam1:
		return "team1"
	case SideTeam2:
		return "team2"
	default:
		return "none"
	}
}

// PlayedSets drops 0-0 placeholder sets; those are "not played" and
// never persisted.
func PlayedSets(sets []domain.SetScore) []domain.SetScore {
	played := make([]domain.SetScore, 0, len(sets))
	for _, s := range sets {
		if s.Team1 == 0 && s.Team2 == 0 {
			continue
		}
		played = append(played, s)
	}
	return played
}

// SetTally counts the played sets won by each team. Any tied played
// set rejects the whole match.
func SetTally(sets []domain.SetScore) (team1, team2 int, err error) {
	for _, s := range sets {
		if s.Team1 < 0 || s.Team2 < 0 {
			return 0, 0, fmt.Errorf("%w: negative set score %d-%d", domain.ErrInvalidInput, s.Team1, s.Team2)
		}
		if s.Team1 == 0 && s.Team2 == 0 {
			continue
		}
		if s.Team1 == s.Team2 {
			return 0, 0, fmt.Errorf("%w: %d-%d", domain.ErrTiedSet, s.Team1, s.Team2)
		}
		if s.Team1 > s.Team2 {
			team1++
		} else {
			team2++
		}
	}
	return team1, team2, nil
}

// DeriveWinner recomputes the match winner from raw set scores. Scores
// are the source of truth; callers must never trust a stored result.
func DeriveWinner(sets []domain.SetScore) (Side, error) {
	t1, t2, err := SetTally(sets)
	if err != nil {
		return SideNone, err
	}
	if t1 < SetsToWin && t2 < SetsToWin {
		return SideNone, fmt.Errorf("%w: sets %d-%d", domain.ErrNoMajorityWinner, t1, t2)
	}
	if t1 > t2 {
		return SideTeam1, nil
	}
	return SideTeam2, nil
}

// ValidateSets checks a proposed set list and returns only the played
// sets, in order. Rules: at most MaxSets entries, no tied played set,
// and one team must win a strict majority (at least SetsToWin).
func ValidateSets(sets []domain.SetScore) ([]domain.SetScore, error) {
	if len(sets) > MaxSets {
		return nil, fmt.Errorf("%w: at most %d sets per match", domain.ErrInvalidInput, MaxSets)
	}
	if _, err := DeriveWinner(sets); err != nil {
		return nil, err
	}
	return PlayedSets(sets), nil
}
