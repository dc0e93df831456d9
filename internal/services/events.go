package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"qrcheckctl/internal/domain"
)

type eventService struct {
	api   domain.EventAPI
	clock func() time.Time
	log   *slog.Logger
}

// NewEventService creates an EventService over the backend event endpoints.
func NewEventService(api domain.EventAPI, log *slog.Logger) domain.EventService {
	return &eventService{
		api:   api,
		clock: time.Now,
		log:   log,
	}
}

// Overview fetches the available and enrolled listings concurrently and
// decorates both against a single instant. Either both collections are fresh
// or the whole call fails; a stale half is never mixed with a fresh one.
func (s *eventService) Overview(ctx context.Context) (*domain.EventOverview, error) {
	var available, enrolled []domain.Event

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		available, err = s.api.ListEvents(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		enrolled, err = s.api.ListMyEvents(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	now := s.clock()
	member := make(map[uuid.UUID]bool, len(enrolled))
	for _, e := range enrolled {
		member[e.PublicID] = true
	}

	overview := &domain.EventOverview{FetchedAt: now}
	for _, e := range available {
		overview.Available = append(overview.Available, decorate(e, member[e.PublicID], now))
	}
	for _, e := range enrolled {
		overview.Enrolled = append(overview.Enrolled, decorate(e, true, now))
	}
	return overview, nil
}

// History returns every enrollment, finished events included.
func (s *eventService) History(ctx context.Context) ([]domain.EventView, error) {
	events, err := s.api.ListAllRegistrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load enrollment history: %w", err)
	}
	now := s.clock()
	views := make([]domain.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, decorate(e, true, now))
	}
	return views, nil
}

// Enroll registers the participant for the event. The eligibility check here
// is advisory; the backend remains authoritative and its duplicate answer is
// mapped to an informational outcome. In both the success and the duplicate
// case the enrolled listing is re-fetched before anything is reported, so the
// caller never renders an optimistic state.
func (s *eventService) Enroll(ctx context.Context, id uuid.UUID) (*domain.EnrollOutcome, error) {
	event, err := s.api.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.api.IsEnrolled(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrolled {
		refreshed, err := s.refreshEnrolled(ctx)
		if err != nil {
			return nil, err
		}
		return &domain.EnrollOutcome{AlreadyEnrolled: true, Enrolled: refreshed}, nil
	}

	if !domain.CanEnroll(event, false, s.clock()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrEnrollmentClosed, event.Name)
	}

	err = s.api.Enroll(ctx, id)
	already := errors.Is(err, domain.ErrAlreadyEnrolled)
	if err != nil && !already {
		return nil, err
	}
	if already {
		s.log.Info("backend reported duplicate enrollment", "event", id)
	}

	refreshed, err := s.refreshEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("enrollment recorded but listing refresh failed: %w", err)
	}
	return &domain.EnrollOutcome{AlreadyEnrolled: already, Enrolled: refreshed}, nil
}

func (s *eventService) refreshEnrolled(ctx context.Context) ([]domain.EventView, error) {
	events, err := s.api.ListMyEvents(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	views := make([]domain.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, decorate(e, true, now))
	}
	return views, nil
}

func decorate(e domain.Event, enrolled bool, now time.Time) domain.EventView {
	return domain.EventView{
		Event:    e,
		Status:   domain.Classify(&e, now),
		Enrolled: enrolled,
		Eligible: domain.CanEnroll(&e, enrolled, now),
	}
}
