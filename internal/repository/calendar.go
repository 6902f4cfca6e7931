package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

const calendarEventsKey = "calendarEvents"

type CalendarRepository struct {
	store  *Store
	logger zerolog.Logger
	mu     sync.Mutex
}

func NewCalendarRepository(store *Store, logger zerolog.Logger) *CalendarRepository {
	return &CalendarRepository{store: store, logger: logger}
}

func (r *CalendarRepository) List(ctx context.Context) ([]domain.CalendarEvent, error) {
	var events []domain.CalendarEvent
	if _, err := r.store.GetJSON(ctx, calendarEventsKey, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	return events, nil
}

// Upsert replaces the event with the same id, or appends a new one.
func (r *CalendarRepository) Upsert(ctx context.Context, event domain.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
			replaced = true
			break
		}
	}
	if !replaced {
		events = append(events, event)
	}

	if err := r.store.PutJSON(ctx, calendarEventsKey, events); err != nil {
		return err
	}
	r.logger.Info().Int64("id", event.ID).Str("type", string(event.Type)).Bool("replaced", replaced).Msg("calendar event saved")
	return nil
}

func (r *CalendarRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := events[:0]
	found := false
	for _, e := range events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("%w: %d", domain.ErrEventNotFound, id)
	}

	if err := r.store.PutJSON(ctx, calendarEventsKey, kept); err != nil {
		return err
	}
	r.logger.Info().Int64("id", id).Msg("calendar event deleted")
	return nil
}

// Prune drops events that ended before the cutoff and persists the
// trimmed collection. Returns how many were removed.
func (r *CalendarRepository) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]domain.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.EndsBefore(cutoff) {
			continue
		}
		kept = append(kept, e)
	}

	pruned := len(events) - len(kept)
	if pruned == 0 {
		return 0, nil
	}
	if err := r.store.PutJSON(ctx, calendarEventsKey, kept); err != nil {
		return 0, err
	}
	r.logger.Info().Int("pruned", pruned).Msg("stale calendar events pruned")
	return pruned, nil
}
