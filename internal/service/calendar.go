package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type CalendarService struct {
	events *repository.CalendarRepository
	logger zerolog.Logger
}

func NewCalendarService(events *repository.CalendarRepository, logger zerolog.Logger) *CalendarService {
	return &CalendarService{events: events, logger: logger}
}

// List returns the events, optionally filtered by type. Events that
// ended more than the retention period ago are pruned first.
func (s *CalendarService) List(ctx context.Context, typeFilter string) ([]domain.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	cutoff := time.Now().Add(-constants.CalendarRetention)
	if _, err := s.events.Prune(ctx, cutoff); err != nil {
		return nil, err
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	if typeFilter == "" || strings.EqualFold(typeFilter, "All") {
		return events, nil
	}

	out := make([]domain.CalendarEvent, 0, len(events))
	for _, e := range events {
		if strings.EqualFold(string(e.Type), typeFilter) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Save upserts an event: a zero id means a new event and gets a
// timestamp id; a known id replaces the stored event in place.
func (s *CalendarService) Save(ctx context.Context, event domain.CalendarEvent) (*domain.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if strings.TrimSpace(event.Title) == "" || event.Start.IsZero() {
		return nil, fmt.Errorf("%w: title and start date are required", domain.ErrInvalidInput)
	}
	switch event.Type {
	case domain.EventPractice, domain.EventMatch, domain.EventTournament:
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, event.Type)
	}
	if event.End.IsZero() {
		event.End = event.Start
	}
	if event.ID == 0 {
		event.ID = time.Now().UnixMilli()
	}

	if err := s.events.Upsert(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *CalendarService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.events.Delete(ctx, id)
}
