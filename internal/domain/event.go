package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for event operations.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this event")
	ErrEnrollmentClosed = errors.New("enrollment is not open for this event")
)

// EventStatus is derived from an event's time window; it is never persisted
// and must be recomputed against the current time on every use.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusOngoing  EventStatus = "ongoing"
	StatusFinished EventStatus = "finished"
)

// Event represents an event as served by the backend. Field names follow the
// backend's wire contract.
type Event struct {
	PublicID       uuid.UUID `json:"id_public"`
	Name           string    `json:"nome"`
	Category       string    `json:"categoria"`
	Subcategory    string    `json:"subcategoria"`
	Description    string    `json:"descricao"`
	StartsAt       Timestamp `json:"data_inicio"`
	EndsAt         Timestamp `json:"data_fim"`
	EnrollmentOpen bool      `json:"inscricoes_abertas"`
}

// Classify reports the status of the event at the given instant. The active
// window is inclusive on both ends: now == start and now == end are ongoing.
func Classify(e *Event, now time.Time) EventStatus {
	if now.Before(e.StartsAt.Time) {
		return StatusUpcoming
	}
	if now.After(e.EndsAt.Time) {
		return StatusFinished
	}
	return StatusOngoing
}

// CanEnroll reports whether the enroll action may be offered for the event.
// Membership wins over everything else: an event the participant is already
// enrolled in never offers enrollment.
func CanEnroll(e *Event, enrolled bool, now time.Time) bool {
	if enrolled {
		return false
	}
	return e.EnrollmentOpen && Classify(e, now) != StatusFinished
}

// EventView is an event decorated with state derived at fetch time.
type EventView struct {
	Event    Event
	Status   EventStatus
	Enrolled bool
	Eligible bool
}

// EventOverview bundles the available and enrolled listings fetched together.
// Both collections come from the same fetch round and derived fields were
// computed against a single instant, so the two never mix stale and fresh data.
type EventOverview struct {
	Available []EventView
	Enrolled  []EventView
	FetchedAt time.Time
}

// EnrollOutcome reports the result of an enroll action. AlreadyEnrolled marks
// the backend's conflict answer, which is informational rather than a failure.
// Enrolled carries the refreshed enrolled listing in either case.
type EnrollOutcome struct {
	AlreadyEnrolled bool
	Enrolled        []EventView
}

// EventAPI defines the backend event endpoints the client consumes.
type EventAPI interface {
	// ListEvents returns all events open for browsing.
	ListEvents(ctx context.Context) ([]Event, error)
	// ListMyEvents returns the current and upcoming events the participant is enrolled in.
	ListMyEvents(ctx context.Context) ([]Event, error)
	// ListAllRegistrations returns every event the participant ever enrolled in, finished ones included.
	ListAllRegistrations(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	IsEnrolled(ctx context.Context, id uuid.UUID) (bool, error)
	// Enroll registers the participant for the event. Returns ErrAlreadyEnrolled
	// on the backend's duplicate-enrollment conflict.
	Enroll(ctx context.Context, id uuid.UUID) error
}

// EventService defines the event browsing and enrollment logic.
type EventService interface {
	Overview(ctx context.Context) (*EventOverview, error)
	History(ctx context.Context) ([]EventView, error)
	Enroll(ctx context.Context, id uuid.UUID) (*EnrollOutcome, error)
}
