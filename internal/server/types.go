package server

import (
	"errors"
	"net/http"
	"time"

	"league-tracker/internal/domain"
	"league-tracker/internal/league"
	"league-tracker/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type signupRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	DOB      string  `json:"dob"`
	Height   float64 `json:"height"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type settingsRequest struct {
	Name      string `json:"name,omitempty"`
	Password  string `json:"password,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type playerResponse struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	DOB       string  `json:"dob,omitempty"`
	Age       int     `json:"age,omitempty"`
	Height    float64 `json:"height,omitempty"`
	AvatarURL string  `json:"avatarUrl,omitempty"`
}

func toPlayerResponse(p domain.Player) playerResponse {
	resp := playerResponse{
		Name:      p.Name,
		Email:     p.Email,
		Age:       p.Age(time.Now()),
		Height:    p.Height,
		AvatarURL: p.AvatarURL,
	}
	if !p.DOB.IsZero() {
		resp.DOB = p.DOB.Format(domain.DateLayout)
	}
	return resp
}

type rosterSlotRequest struct {
	Selected string `json:"selected"`
	Manual   string `json:"manual"`
}

type setScoreRequest struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

type matchRequest struct {
	Date  string              `json:"date"`
	Combo string              `json:"combo"`
	Team1 []rosterSlotRequest `json:"team1"`
	Team2 []rosterSlotRequest `json:"team2"`
	Sets  []setScoreRequest   `json:"sets"`
}

type updateSetsRequest struct {
	Sets []setScoreRequest `json:"sets"`
}

func toSlots(reqs []rosterSlotRequest) []league.RosterSlot {
	slots := make([]league.RosterSlot, len(reqs))
	for i, r := range reqs {
		slots[i] = league.RosterSlot{Selected: r.Selected, Manual: r.Manual}
	}
	return slots
}

func toSets(reqs []setScoreRequest) []domain.SetScore {
	sets := make([]domain.SetScore, len(reqs))
	for i, r := range reqs {
		sets[i] = domain.SetScore{Team1: r.Team1, Team2: r.Team2}
	}
	return sets
}

type matchResponse struct {
	ID          int64             `json:"id"`
	Date        string            `json:"date"`
	Teams       [2][]string       `json:"teams"`
	Sets        []domain.SetScore `json:"sets"`
	AddedBy     string            `json:"addedBy"`
	PlayerEmail string            `json:"playerEmail"`
	Combo       string            `json:"combo"`
	Winner      string            `json:"winner"`
}

func toMatchResponse(m domain.Match) matchResponse {
	resp := matchResponse{
		ID:          m.ID,
		Date:        m.Date.Format(domain.DateLayout),
		Sets:        m.Sets,
		AddedBy:     m.AddedBy,
		PlayerEmail: m.PlayerEmail,
		Combo:       m.ComboLabel(),
	}
	for side, team := range m.Teams {
		resp.Teams[side] = make([]string, len(team))
		for i, ref := range team {
			resp.Teams[side][i] = ref.String()
		}
	}
	winner, err := league.DeriveWinner(m.Sets)
	if err != nil {
		winner = league.SideNone
	}
	resp.Winner = winner.String()
	return resp
}

func toMatchResponses(matches []domain.Match) []matchResponse {
	out := make([]matchResponse, len(matches))
	for i, m := range matches {
		out[i] = toMatchResponse(m)
	}
	return out
}

type teammateResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type playerStatsResponse struct {
	Key       string             `json:"key"`
	Name      string             `json:"name"`
	Wins      int                `json:"wins"`
	Losses    int                `json:"losses"`
	SetsWon   int                `json:"setsWon"`
	SetsLost  int                `json:"setsLost"`
	WinRate   float64            `json:"winRate"`
	Teammates []teammateResponse `json:"teammates"`
}

type statsResponse struct {
	Season        int                   `json:"season,omitempty"`
	Seasons       []int                 `json:"seasons"`
	TotalMatches  int                   `json:"totalMatches"`
	MostUsedCombo string                `json:"mostUsedCombo,omitempty"`
	Players       []playerStatsResponse `json:"players"`
}

func toStatsResponse(v *service.SummaryView) statsResponse {
	resp := statsResponse{
		Season:        v.Season,
		Seasons:       v.Seasons,
		TotalMatches:  v.TotalMatches,
		MostUsedCombo: v.MostUsedCombo,
		Players:       make([]playerStatsResponse, 0, len(v.Players)),
	}
	for _, p := range v.Players {
		pr := playerStatsResponse{
			Key:      p.Key,
			Name:     p.Name,
			Wins:     p.Wins,
			Losses:   p.Losses,
			SetsWon:  p.SetsWon,
			SetsLost: p.SetsLost,
			WinRate:  p.WinRate,
		}
		for _, t := range p.Teammates {
			pr.Teammates = append(pr.Teammates, teammateResponse{Key: t.Key, Name: t.Name, Count: t.Count})
		}
		resp.Players = append(resp.Players, pr)
	}
	return resp
}

type recordResponse struct {
	Player  playerResponse  `json:"player"`
	Wins    int             `json:"wins"`
	Losses  int             `json:"losses"`
	WinRate float64         `json:"winRate"`
	Recent  []matchResponse `json:"recent"`
	History []matchResponse `json:"history"`
}

type blogPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type calendarEventRequest struct {
	ID       int64  `json:"id,omitempty"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Location string `json:"location,omitempty"`
	Link     string `json:"link,omitempty"`
}

// statusFor maps the domain error taxonomy onto HTTP statuses. All of
// these are recoverable: the client is expected to show the message
// and let the user retry.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotPostAuthor):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIncompleteRoster),
		errors.Is(err, domain.ErrTiedSet),
		errors.Is(err, domain.ErrNoMajorityWinner):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
