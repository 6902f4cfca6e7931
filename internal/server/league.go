package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/league"
	"league-tracker/internal/repository"
	"league-tracker/internal/service"

	"github.com/rs/zerolog"
)

// LeagueServer exposes the league over plain JSON HTTP. It is the sole
// collaborator the UI talks to; all rendering and routing beyond these
// endpoints is the UI's business.
type LeagueServer struct {
	auth     *service.AuthService
	matches  *service.MatchService
	stats    *service.StatsService
	blog     *service.BlogService
	calendar *service.CalendarService
	blobs    *repository.BlobStore
	logger   zerolog.Logger
}

func NewLeagueServer(
	auth *service.AuthService,
	matches *service.MatchService,
	stats *service.StatsService,
	blog *service.BlogService,
	calendar *service.CalendarService,
	blobs *repository.BlobStore,
	logger zerolog.Logger,
) *LeagueServer {
	return &LeagueServer{
		auth:     auth,
		matches:  matches,
		stats:    stats,
		blog:     blog,
		calendar: calendar,
		blobs:    blobs,
		logger:   logger,
	}
}

// Register wires all routes onto the mux.
func (s *LeagueServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.handleSession)

	mux.HandleFunc("GET /api/players", s.handleListPlayers)
	mux.HandleFunc("GET /api/players/{email}", s.handlePlayerRecord)
	mux.HandleFunc("POST /api/settings", s.handleSettings)

	mux.HandleFunc("GET /api/matches", s.handleListMatches)
	mux.HandleFunc("POST /api/matches", s.handleRecordMatch)
	mux.HandleFunc("PUT /api/matches/{id}/sets", s.handleUpdateSets)
	mux.HandleFunc("DELETE /api/matches/{id}", s.handleDeleteMatch)

	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/stats/head-to-head", s.handleHeadToHead)

	mux.HandleFunc("GET /api/blog", s.handleListPosts)
	mux.HandleFunc("POST /api/blog", s.handleAddPost)
	mux.HandleFunc("DELETE /api/blog/{id}", s.handleDeletePost)
	mux.HandleFunc("POST /api/blobs", s.handleUploadBlob)
	mux.HandleFunc("GET /blobs/{id}", s.handleServeBlob)

	mux.HandleFunc("GET /api/calendar", s.handleListEvents)
	mux.HandleFunc("POST /api/calendar", s.handleSaveEvent)
	mux.HandleFunc("DELETE /api/calendar/{id}", s.handleDeleteEvent)
}

func (s *LeagueServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *LeagueServer) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func (s *LeagueServer) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return false
	}
	return true
}

// currentPlayer resolves the session player, writing a 401 when the
// session is empty.
func (s *LeagueServer) currentPlayer(w http.ResponseWriter, r *http.Request) (*domain.Player, bool) {
	player, err := s.auth.Current(r.Context())
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if player == nil {
		s.writeError(w, domain.ErrNotLoggedIn)
		return nil, false
	}
	return player, true
}

func (s *LeagueServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !s.decode(w, r, &req) {
		return
	}
	dob, err := domain.ParseDate(req.DOB)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	player, err := s.auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		DOB:      dob,
		Height:   req.Height,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toPlayerResponse(*player))
}

func (s *LeagueServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}
	player, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPlayerResponse(*player))
}

func (s *LeagueServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *LeagueServer) handleSession(w http.ResponseWriter, r *http.Request) {
	player, ok := s.currentPlayer(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, toPlayerResponse(*player))
}

func (s *LeagueServer) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.auth.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]playerResponse, len(players))
	for i, p := range players {
		out[i] = toPlayerResponse(p)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *LeagueServer) handlePlayerRecord(w http.ResponseWriter, r *http.Request) {
	record, err := s.stats.PlayerRecord(r.Context(), r.PathValue("email"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recordResponse{
		Player:  toPlayerResponse(record.Player),
		Wins:    record.Wins,
		Losses:  record.Losses,
		WinRate: record.WinRate,
		Recent:  toMatchResponses(record.Recent),
		History: toMatchResponses(record.History),
	})
}

// handleSettings applies profile changes to the logged-in player. Each
// non-empty field is applied independently.
func (s *LeagueServer) handleSettings(w http.ResponseWriter, r *http.Request) {
	player, ok := s.currentPlayer(w, r)
	if !ok {
		return
	}
	var req settingsRequest
	if !s.decode(w, r, &req) {
		return
	}

	updated := player
	var err error
	if req.Name != "" {
		if updated, err = s.auth.UpdateName(r.Context(), player.Email, req.Name); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if req.Password != "" {
		if updated, err = s.auth.UpdatePassword(r.Context(), player.Email, req.Password); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if req.AvatarURL != "" {
		if updated, err = s.auth.UpdateAvatar(r.Context(), player.Email, req.AvatarURL); err != nil {
			s.writeError(w, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, toPlayerResponse(*updated))
}

func (s *LeagueServer) handleListMatches(w http.ResponseWriter, r *http.Request) {
	var (
		matches []domain.Match
		err     error
	)
	if player := r.URL.Query().Get("player"); player != "" {
		matches, err = s.matches.ListFor(r.Context(), player)
	} else {
		matches, err = s.matches.List(r.Context())
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMatchResponses(matches))
}

func (s *LeagueServer) handleRecordMatch(w http.ResponseWriter, r *http.Request) {
	player, ok := s.currentPlayer(w, r)
	if !ok {
		return
	}
	var req matchRequest
	if !s.decode(w, r, &req) {
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	match, err := s.matches.Record(r.Context(), *player, league.MatchInput{
		Date:  date,
		Combo: req.Combo,
		Team1: toSlots(req.Team1),
		Team2: toSlots(req.Team2),
		Sets:  toSets(req.Sets),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toMatchResponse(*match))
}

func (s *LeagueServer) matchID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: malformed match id", domain.ErrInvalidInput))
		return 0, false
	}
	return id, true
}

func (s *LeagueServer) handleUpdateSets(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentPlayer(w, r); !ok {
		return
	}
	id, ok := s.matchID(w, r)
	if !ok {
		return
	}
	var req updateSetsRequest
	if !s.decode(w, r, &req) {
		return
	}
	match, err := s.matches.UpdateSets(r.Context(), id, toSets(req.Sets))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMatchResponse(*match))
}

func (s *LeagueServer) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentPlayer(w, r); !ok {
		return
	}
	id, ok := s.matchID(w, r)
	if !ok {
		return
	}
	if err := s.matches.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *LeagueServer) seasonParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return 0, true
	}
	season, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: malformed season", domain.ErrInvalidInput))
		return 0, false
	}
	return season, true
}

func (s *LeagueServer) handleStats(w http.ResponseWriter, r *http.Request) {
	season, ok := s.seasonParam(w, r)
	if !ok {
		return
	}
	summary, err := s.stats.Summary(r.Context(), season)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toStatsResponse(summary))
}

func (s *LeagueServer) handleHeadToHead(w http.ResponseWriter, r *http.Request) {
	p1 := r.URL.Query().Get("p1")
	p2 := r.URL.Query().Get("p2")
	if p1 == "" || p2 == "" {
		s.writeError(w, fmt.Errorf("%w: p1 and p2 are required", domain.ErrInvalidInput))
		return
	}
	season, ok := s.seasonParam(w, r)
	if !ok {
		return
	}
	matches, err := s.stats.HeadToHead(r.Context(), p1, p2, season)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMatchResponses(matches))
}

func (s *LeagueServer) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blog.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, posts)
}

func (s *LeagueServer) handleAddPost(w http.ResponseWriter, r *http.Request) {
	player, ok := s.currentPlayer(w, r)
	if !ok {
		return
	}
	var req blogPostRequest
	if !s.decode(w, r, &req) {
		return
	}
	post, err := s.blog.Add(r.Context(), *player, req.Title, req.Content, req.ImageURL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, post)
}

func (s *LeagueServer) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	player, ok := s.currentPlayer(w, r)
	if !ok {
		return
	}
	if err := s.blog.Delete(r.Context(), *player, r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *LeagueServer) handleUploadBlob(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentPlayer(w, r); !ok {
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, constants.MaxUploadBytes))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: failed to read upload", domain.ErrInvalidInput))
		return
	}
	if len(data) == 0 {
		s.writeError(w, fmt.Errorf("%w: empty upload", domain.ErrInvalidInput))
		return
	}
	id, err := s.blobs.Save(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"url": "/blobs/" + id})
}

func (s *LeagueServer) handleServeBlob(w http.ResponseWriter, r *http.Request) {
	path, err := s.blobs.Path(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

func (s *LeagueServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.calendar.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, events)
}

func (s *LeagueServer) handleSaveEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentPlayer(w, r); !ok {
		return
	}
	var req calendarEventRequest
	if !s.decode(w, r, &req) {
		return
	}
	start, err := domain.ParseDate(req.Start)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	end, err := domain.ParseDate(req.End)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	event, err := s.calendar.Save(r.Context(), domain.CalendarEvent{
		ID:       req.ID,
		Title:    req.Title,
		Type:     domain.EventType(req.Type),
		Start:    start,
		End:      end,
		Notes:    req.Notes,
		Location: req.Location,
		Link:     req.Link,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

func (s *LeagueServer) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentPlayer(w, r); !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: malformed event id", domain.ErrInvalidInput))
		return
	}
	if err := s.calendar.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
