package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"league-tracker/internal/domain"
)

func TestCalendarServiceSave(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	saved, err := d.calendar.Save(ctx, domain.CalendarEvent{
		Title: "Tuesday practice",
		Type:  domain.EventPractice,
		Start: domain.NewDate(2026, time.June, 3),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == 0 {
		t.Error("new event got no id")
	}
	if !saved.End.Equal(saved.Start.Time) {
		t.Errorf("missing end should default to start, got %v", saved.End)
	}

	saved.Title = "Thursday practice"
	again, err := d.calendar.Save(ctx, *saved)
	if err != nil {
		t.Fatalf("Save existing: %v", err)
	}
	if again.ID != saved.ID {
		t.Errorf("known id replaced in place, got new id %d", again.ID)
	}

	events, err := d.calendar.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Thursday practice" {
		t.Errorf("events = %v", events)
	}
}

func TestCalendarServiceSaveValidation(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	start := domain.NewDate(2026, time.June, 3)

	tests := []struct {
		name  string
		event domain.CalendarEvent
	}{
		{"missing title", domain.CalendarEvent{Type: domain.EventMatch, Start: start}},
		{"missing start", domain.CalendarEvent{Title: "x", Type: domain.EventMatch}},
		{"unknown type", domain.CalendarEvent{Title: "x", Type: "Scrimmage", Start: start}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.calendar.Save(ctx, tt.event); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("Save = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCalendarServiceListFilters(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	future := time.Now().AddDate(0, 1, 0)
	for i, typ := range []domain.EventType{domain.EventPractice, domain.EventMatch, domain.EventTournament} {
		_, err := d.calendar.Save(ctx, domain.CalendarEvent{
			ID:    int64(i + 1),
			Title: string(typ),
			Type:  typ,
			Start: domain.NewDate(future.Year(), future.Month(), future.Day()),
		})
		if err != nil {
			t.Fatalf("Save %s: %v", typ, err)
		}
	}

	all, err := d.calendar.List(ctx, "All")
	if err != nil {
		t.Fatalf("List(All): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(All) = %d events, want 3", len(all))
	}

	practices, err := d.calendar.List(ctx, "practice")
	if err != nil {
		t.Fatalf("List(practice): %v", err)
	}
	if len(practices) != 1 || practices[0].Type != domain.EventPractice {
		t.Errorf("List(practice) = %v", practices)
	}
}

func TestCalendarServiceListPrunesStaleEvents(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	stale := time.Now().AddDate(-2, 0, 0)
	fresh := time.Now().AddDate(0, 0, 7)
	events := []domain.CalendarEvent{
		{ID: 1, Title: "long gone", Type: domain.EventMatch, Start: domain.NewDate(stale.Year(), stale.Month(), stale.Day())},
		{ID: 2, Title: "upcoming", Type: domain.EventMatch, Start: domain.NewDate(fresh.Year(), fresh.Month(), fresh.Day())},
	}
	for _, e := range events {
		if err := d.events.Upsert(ctx, e); err != nil {
			t.Fatalf("seed event %d: %v", e.ID, err)
		}
	}

	got, err := d.calendar.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("List = %v, want only the upcoming event", got)
	}

	// The prune is persistent, not a view-time filter.
	raw, err := d.events.List(ctx)
	if err != nil {
		t.Fatalf("repository List: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("stale event still stored: %v", raw)
	}
}
