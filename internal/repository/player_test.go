package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

func TestPlayerRepository(t *testing.T) {
	store := newTestStore(t)
	repo := NewPlayerRepository(store, zerolog.Nop())
	ctx := context.Background()

	ana := domain.Player{
		Name:     "Ana",
		Email:    "ana@club.org",
		Password: "secret",
		DOB:      domain.NewDate(1990, time.March, 1),
		Height:   172,
	}
	if err := repo.Append(ctx, ana); err != nil {
		t.Fatalf("Append: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "ANA@CLUB.ORG")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.Name != "Ana" || found.Height != 172 {
		t.Errorf("found = %+v", found)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@club.org"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Errorf("FindByEmail(unknown) = %v, want ErrPlayerNotFound", err)
	}

	updated, err := repo.Update(ctx, "Ana@Club.org", func(p *domain.Player) {
		p.AvatarURL = "/blobs/abc123"
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AvatarURL != "/blobs/abc123" {
		t.Errorf("avatar not persisted: %+v", updated)
	}

	persisted, err := repo.FindByEmail(ctx, "ana@club.org")
	if err != nil {
		t.Fatalf("FindByEmail after update: %v", err)
	}
	if persisted.AvatarURL != "/blobs/abc123" {
		t.Error("update did not survive a reload")
	}
}

func TestSessionRepository(t *testing.T) {
	store := newTestStore(t)
	repo := NewSessionRepository(store, zerolog.Nop())
	ctx := context.Background()

	current, err := repo.Current(ctx)
	if err != nil {
		t.Fatalf("Current before any login: %v", err)
	}
	if current != nil {
		t.Errorf("expected no session, got %+v", current)
	}

	if err := repo.Set(ctx, &domain.Player{Name: "Ana", Email: "ana@club.org"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	current, err = repo.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current == nil || current.Email != "ana@club.org" {
		t.Errorf("session = %+v, want ana", current)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	current, err = repo.Current(ctx)
	if err != nil {
		t.Fatalf("Current after logout: %v", err)
	}
	if current != nil {
		t.Errorf("session survived logout: %+v", current)
	}
}
