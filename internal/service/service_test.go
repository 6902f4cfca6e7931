package service

import (
	"path/filepath"
	"testing"

	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type testDeps struct {
	players  *repository.PlayerRepository
	session  *repository.SessionRepository
	matches  *repository.MatchRepository
	posts    *repository.BlogRepository
	events   *repository.CalendarRepository
	auth     *AuthService
	match    *MatchService
	stats    *StatsService
	blog     *BlogService
	calendar *CalendarService
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	nop := zerolog.Nop()
	store := repository.NewStore(db, nop)

	d := &testDeps{
		players: repository.NewPlayerRepository(store, nop),
		session: repository.NewSessionRepository(store, nop),
		matches: repository.NewMatchRepository(store, nop),
		posts:   repository.NewBlogRepository(store, nop),
		events:  repository.NewCalendarRepository(store, nop),
	}
	d.auth = NewAuthService(d.players, d.session, nop)
	d.match = NewMatchService(d.matches, nop)
	d.stats = NewStatsService(d.matches, d.players, nop)
	d.blog = NewBlogService(d.posts, nop)
	d.calendar = NewCalendarService(d.events, nop)
	return d
}
