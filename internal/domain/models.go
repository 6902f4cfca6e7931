package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. It marshals to the
// plain "YYYY-MM-DD" strings the store uses at rest.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PlayerRef identifies a roster slot occupant: either a registered
// player by email or a free-text name for a guest. At rest it is a
// bare string; a string containing "@" is treated as an email
// reference.
type PlayerRef struct {
	email string
	name  string
}

func Identified(email string) PlayerRef {
	return PlayerRef{email: email}
}

func FreeText(name string) PlayerRef {
	return PlayerRef{name: name}
}

func ParseRef(s string) PlayerRef {
	if strings.Contains(s, "@") {
		return Identified(s)
	}
	return FreeText(s)
}

func (r PlayerRef) IsIdentified() bool { return r.email != "" }

// Email returns the referenced email, empty for free-text refs.
func (r PlayerRef) Email() string { return r.email }

// String returns the stored representation of the reference.
func (r PlayerRef) String() string {
	if r.email != "" {
		return r.email
	}
	return r.name
}

// Key is the canonical identity used for grouping and comparison.
// Matching is case-insensitive for both variants.
func (r PlayerRef) Key() string {
	return strings.ToLower(r.String())
}

// Is reports whether the reference denotes the given identifier
// (email or name), compared case-insensitively.
func (r PlayerRef) Is(identifier string) bool {
	return strings.EqualFold(r.String(), identifier)
}

func (r PlayerRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *PlayerRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRef(s)
	return nil
}

// Player is a registered league member. Passwords are stored in plain
// text; the store is local and single-user.
type Player struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	DOB       Date    `json:"dob"`
	Height    float64 `json:"height"`
	AvatarURL string  `json:"avatarUrl,omitempty"`
}

// Age in whole years at the given instant.
func (p Player) Age(now time.Time) int {
	if p.DOB.IsZero() {
		return 0
	}
	years := now.Year() - p.DOB.Year()
	if now.Month() < p.DOB.Month() ||
		(now.Month() == p.DOB.Month() && now.Day() < p.DOB.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// SetScore is one scoring period within a match.
type SetScore struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// Match is a recorded contest between two teams, decided by best-of-3
// (or fewer) sets. The winner is always derived from Sets; no stored
// result field is authoritative.
type Match struct {
	ID          int64          `json:"id"`
	Date        Date           `json:"date"`
	Teams       [2][]PlayerRef `json:"teams"`
	Sets        []SetScore     `json:"sets"`
	AddedBy     string         `json:"addedBy"`
	PlayerEmail string         `json:"playerEmail"`
}

// Involves reports whether the identifier appears in any roster slot
// of either team.
func (m Match) Involves(identifier string) bool {
	for _, team := range m.Teams {
		for _, ref := range team {
			if ref.Is(identifier) {
				return true
			}
		}
	}
	return false
}

// ComboLabel is the roster-size pair of the match, e.g. "4v5".
func (m Match) ComboLabel() string {
	return fmt.Sprintf("%dv%d", len(m.Teams[0]), len(m.Teams[1]))
}

// BlogPost is a league news entry, newest first in the collection.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	AuthorEmail string    `json:"authorEmail"`
	AuthorName  string    `json:"authorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EventType string

const (
	EventPractice   EventType = "Practice"
	EventMatch      EventType = "Match"
	EventTournament EventType = "Tournament"
)

// CalendarEvent is an independently persisted schedule entry with no
// cross-references to matches or players.
type CalendarEvent struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Type     EventType `json:"type"`
	Start    Date      `json:"start"`
	End      Date      `json:"end"`
	Notes    string    `json:"notes,omitempty"`
	Location string    `json:"location,omitempty"`
	Link     string    `json:"link,omitempty"`
}

// EndsBefore reports whether the event is over before the cutoff,
// falling back to the start date for events without an end.
func (e CalendarEvent) EndsBefore(cutoff time.Time) bool {
	end := e.End
	if end.IsZero() {
		end = e.Start
	}
	if end.IsZero() {
		return false
	}
	return end.Before(cutoff)
}
