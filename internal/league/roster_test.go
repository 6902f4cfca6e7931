package league

import (
	"errors"
	"testing"
	"time"

	"league-tracker/internal/domain"
)

func TestParseCombo(t *testing.T) {
	t1, t2, err := ParseCombo("4v5")
	if err != nil {
		t.Fatalf("ParseCombo(4v5) error: %v", err)
	}
	if t1 != 4 || t2 != 5 {
		t.Errorf("ParseCombo(4v5) = %d, %d", t1, t2)
	}

	for _, bad := range []string{"", "7v7", "1v1", "4x5", "v5"} {
		if _, _, err := ParseCombo(bad); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("ParseCombo(%q) expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func validInput() MatchInput {
	return MatchInput{
		Date:  domain.NewDate(2025, time.March, 8),
		Combo: "2v2",
		Team1: []RosterSlot{{Selected: "ana@club.org"}, {Selected: "ben@club.org"}},
		Team2: []RosterSlot{{Selected: "cara@club.org"}, {Manual: "Guest Player"}},
		Sets:  []domain.SetScore{{Team1: 21, Team2: 15}, {Team1: 21, Team2: 18}, {Team1: 0, Team2: 0}},
	}
}

func TestBuildMatch(t *testing.T) {
	submitter := domain.Player{Name: "Ana", Email: "ana@club.org"}
	now := time.Date(2025, time.March, 8, 18, 30, 0, 0, time.UTC)

	match, err := BuildMatch(validInput(), submitter, now)
	if err != nil {
		t.Fatalf("BuildMatch() error: %v", err)
	}

	if match.ID != now.UnixMilli() {
		t.Errorf("id = %d, want submission timestamp %d", match.ID, now.UnixMilli())
	}
	if match.AddedBy != "Ana" || match.PlayerEmail != "ana@club.org" {
		t.Errorf("submitter stamp wrong: addedBy=%q playerEmail=%q", match.AddedBy, match.PlayerEmail)
	}
	if len(match.Sets) != 2 {
		t.Errorf("placeholder set not dropped: %v", match.Sets)
	}
	if got := match.Teams[1][1].String(); got != "Guest Player" {
		t.Errorf("manual slot = %q, want Guest Player", got)
	}
	if !match.Teams[0][0].IsIdentified() {
		t.Error("email slot should be an identified ref")
	}
	if match.Teams[1][1].IsIdentified() {
		t.Error("free-text slot should not be an identified ref")
	}
}

func TestBuildMatchManualOverridesSelected(t *testing.T) {
	in := validInput()
	in.Team1[0] = RosterSlot{Selected: "ana@club.org", Manual: "  Dora  "}

	match, err := BuildMatch(in, domain.Player{Name: "Ana", Email: "ana@club.org"}, time.Now())
	if err != nil {
		t.Fatalf("BuildMatch() error: %v", err)
	}
	if got := match.Teams[0][0].String(); got != "Dora" {
		t.Errorf("slot = %q, want manual name to win", got)
	}
}

func TestBuildMatchRejections(t *testing.T) {
	submitter := domain.Player{Name: "Ana", Email: "ana@club.org"}

	tests := []struct {
		name    string
		mutate  func(*MatchInput)
		wantErr error
	}{
		{
			name:    "empty slot",
			mutate:  func(in *MatchInput) { in.Team2[1] = RosterSlot{} },
			wantErr: domain.ErrIncompleteRoster,
		},
		{
			name:    "whitespace-only slot",
			mutate:  func(in *MatchInput) { in.Team1[1] = RosterSlot{Manual: "   "} },
			wantErr: domain.ErrIncompleteRoster,
		},
		{
			name:    "roster size does not match combo",
			mutate:  func(in *MatchInput) { in.Combo = "3v3" },
			wantErr: domain.ErrIncompleteRoster,
		},
		{
			name:    "tied set",
			mutate:  func(in *MatchInput) { in.Sets[1] = domain.SetScore{Team1: 20, Team2: 20} },
			wantErr: domain.ErrTiedSet,
		},
		{
			name: "split sets",
			mutate: func(in *MatchInput) {
				in.Sets = []domain.SetScore{{Team1: 21, Team2: 15}, {Team1: 15, Team2: 21}}
			},
			wantErr: domain.ErrNoMajorityWinner,
		},
		{
			name:    "unknown combo",
			mutate:  func(in *MatchInput) { in.Combo = "9v9" },
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := BuildMatch(in, submitter, time.Now()); !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildMatch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
