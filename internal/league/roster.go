package league

import (
	"fmt"
	"strings"
	"time"

	"league-tracker/internal/domain"
)

// TeamCombos are the team-size combinations the entry form offers.
var TeamCombos = []string{
	"2v2", "2v3", "3v3", "3v4", "4v4", "4v5", "5v5", "5v6", "6v6",
}

// ParseCombo splits a combination label like "4v5" into team sizes.
// Only the known combinations are accepted.
func ParseCombo(label string) (team1, team2 int, err error) {
	for _, known := range TeamCombos {
		if label == known {
			if _, err := fmt.Sscanf(label, "%dv%d", &team1, &team2); err != nil {
				return 0, 0, fmt.Errorf("%w: malformed combination %q", domain.ErrInvalidInput, label)
			}
			return team1, team2, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: unknown team combination %q", domain.ErrInvalidInput, label)
}

// RosterSlot is one position on a proposed team: a selected player
// identifier, a manually typed name, or both. Manual text wins.
type RosterSlot struct {
	Selected string
	Manual   string
}

// MatchInput is a proposed match before validation.
type MatchInput struct {
	Date  domain.Date
	Combo string
	Team1 []RosterSlot
	Team2 []RosterSlot
	Sets  []domain.SetScore
}

func resolveTeam(team int, size int, slots []RosterSlot) ([]domain.PlayerRef, error) {
	if len(slots) != size {
		return nil, fmt.Errorf("%w: team %d needs %d players, got %d", domain.ErrIncompleteRoster, team, size, len(slots))
	}
	refs := make([]domain.PlayerRef, len(slots))
	for i, slot := range slots {
		name := strings.TrimSpace(slot.Manual)
		if name == "" {
			name = strings.TrimSpace(slot.Selected)
		}
		if name == "" {
			return nil, fmt.Errorf("%w: team %d slot %d", domain.ErrIncompleteRoster, team, i+1)
		}
		refs[i] = domain.ParseRef(name)
	}
	return refs, nil
}

// BuildMatch validates a proposed match and constructs the record to
// persist. It has no side effects; persistence is the caller's
// responsibility. The id is the submission timestamp, which is unique
// enough for a single-writer store.
func BuildMatch(in MatchInput, submitter domain.Player, now time.Time) (*domain.Match, error) {
	size1, size2, err := ParseCombo(in.Combo)
	if err != nil {
		return nil, err
	}

	team1, err := resolveTeam(1, size1, in.Team1)
	if err != nil {
		return nil, err
	}
	team2, err := resolveTeam(2, size2, in.Team2)
	if err != nil {
		return nil, err
	}

	played, err := ValidateSets(in.Sets)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = domain.Date{Time: now}
	}

	return &domain.Match{
		ID:          now.UnixMilli(),
		Date:        date,
		Teams:       [2][]domain.PlayerRef{team1, team2},
		Sets:        played,
		AddedBy:     submitter.Name,
		PlayerEmail: submitter.Email,
	}, nil
}
