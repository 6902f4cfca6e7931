package league

import (
	"sort"

	"league-tracker/internal/domain"
)

// PlayerStats are the aggregate tallies for a single roster identity.
type PlayerStats struct {
	Ref      domain.PlayerRef
	Wins     int
	Losses   int
	SetsWon  int
	SetsLost int
	// Teammates counts matches shared with each distinct co-member of
	// the same team, keyed canonically. Incremented once per match,
	// not per set.
	Teammates map[string]int
}

// Matches is the number of decided matches the player appeared in.
func (s *PlayerStats) Matches() int { return s.Wins + s.Losses }

// WinRate is the win percentage over decided matches, 0 when none.
func (s *PlayerStats) WinRate() float64 {
	total := s.Matches()
	if total == 0 {
		return 0
	}
	return float64(s.Wins) / float64(total) * 100
}

// Summary is the aggregate view over a (possibly season-filtered)
// match collection.
type Summary struct {
	TotalMatches int
	// MostUsedCombo is the roster-size pair with the highest count;
	// ties break lexicographically on the label so the result is
	// deterministic. Empty when there are no matches.
	MostUsedCombo string
	ComboCounts   map[string]int
	Players       map[string]*PlayerStats
	// DisplayNames maps canonical keys to the first-encountered stored
	// spelling, for rendering.
	DisplayNames map[string]string
}

// FilterSeason keeps matches whose date falls in the calendar year.
// Boundary dates Jan 1 and Dec 31 are inclusive.
func FilterSeason(matches []domain.Match, year int) []domain.Match {
	out := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if !m.Date.IsZero() && m.Date.Year() == year {
			out = append(out, m)
		}
	}
	return out
}

// Seasons lists the distinct calendar years present, ascending.
func Seasons(matches []domain.Match) []int {
	seen := make(map[int]bool)
	for _, m := range matches {
		if !m.Date.IsZero() {
			seen[m.Date.Year()] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Aggregate computes per-player win/loss/set tallies and teammate
// frequency over the given matches. The winner of each match is
// recomputed from its stored sets; sets recorded as ties (which a
// valid store never contains) count for neither side.
func Aggregate(matches []domain.Match) *Summary {
	sum := &Summary{
		TotalMatches: len(matches),
		ComboCounts:  make(map[string]int),
		Players:      make(map[string]*PlayerStats),
		DisplayNames: make(map[string]string),
	}

	stats := func(ref domain.PlayerRef) *PlayerStats {
		key := ref.Key()
		if s, ok := sum.Players[key]; ok {
			return s
		}
		s := &PlayerStats{Ref: ref, Teammates: make(map[string]int)}
		sum.Players[key] = s
		sum.DisplayNames[key] = ref.String()
		return s
	}

	for _, m := range matches {
		sum.ComboCounts[m.ComboLabel()]++

		t1Sets, t2Sets := 0, 0
		for _, s := range m.Sets {
			switch {
			case s.Team1 == 0 && s.Team2 == 0:
			case s.Team1 > s.Team2:
				t1Sets++
			case s.Team2 > s.Team1:
				t2Sets++
			}
		}

		for side, team := range m.Teams {
			won, lost := t1Sets, t2Sets
			if side == 1 {
				won, lost = t2Sets, t1Sets
			}
			for _, ref := range team {
				s := stats(ref)
				s.SetsWon += won
				s.SetsLost += lost
				if won > lost {
					s.Wins++
				} else if lost > won {
					s.Losses++
				}
				for _, mate := range team {
					if mate.Key() != ref.Key() {
						s.Teammates[mate.Key()]++
					}
				}
			}
		}
	}

	sum.MostUsedCombo = mostUsedCombo(sum.ComboCounts)
	return sum
}

func mostUsedCombo(counts map[string]int) string {
	best := ""
	bestCount := 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && bestCount > 0 && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}

func sortNewestFirst(matches []domain.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date.Time) {
			return matches[i].Date.After(matches[j].Date.Time)
		}
		return matches[i].ID > matches[j].ID
	})
}

// MatchesFor lists the matches the identifier appears in, newest
// first.
func MatchesFor(matches []domain.Match, identifier string) []domain.Match {
	out := make([]domain.Match, 0)
	for _, m := range matches {
		if m.Involves(identifier) {
			out = append(out, m)
		}
	}
	sortNewestFirst(out)
	return out
}

// HeadToHead lists the matches in which both identifiers appear
// anywhere among the roster slots of either team, newest first.
func HeadToHead(matches []domain.Match, a, b string) []domain.Match {
	out := make([]domain.Match, 0)
	for _, m := range matches {
		if m.Involves(a) && m.Involves(b) {
			out = append(out, m)
		}
	}
	sortNewestFirst(out)
	return out
}

// Record is a single player's derived win/loss record.
type Record struct {
	Wins   int
	Losses int
}

func (r Record) WinRate() float64 {
	total := r.Wins + r.Losses
	if total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(total) * 100
}

// RecordFor derives the identifier's record over the matches it
// appears in. Matches whose sets decide no winner count for neither
// column.
func RecordFor(matches []domain.Match, identifier string) Record {
	var rec Record
	for _, m := range matches {
		side := SideNone
		for _, ref := range m.Teams[0] {
			if ref.Is(identifier) {
				side = SideTeam1
				break
			}
		}
		if side == SideNone {
			for _, ref := range m.Teams[1] {
				if ref.Is(identifier) {
					side = SideTeam2
					break
				}
			}
		}
		if side == SideNone {
			continue
		}
		winner, err := DeriveWinner(m.Sets)
		if err != nil {
			continue
		}
		if winner == side {
			rec.Wins++
		} else {
			rec.Losses++
		}
	}
	return rec
}
