package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"qrcheckctl/internal/domain"
)

// ListEvents returns all events open for browsing.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.getJSON(ctx, "/eventos/", &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListMyEvents returns the participant's current and upcoming enrollments.
func (c *Client) ListMyEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.getJSON(ctx, "/eventos/meus-eventos", &events); err != nil {
		return nil, fmt.Errorf("list my events: %w", err)
	}
	return events, nil
}

// ListAllRegistrations returns every event the participant enrolled in,
// including finished ones.
func (c *Client) ListAllRegistrations(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.getJSON(ctx, "/eventos/todas-inscricoes", &events); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return events, nil
}

// GetEvent returns one event by its public id.
func (c *Client) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	if err := c.getJSON(ctx, "/eventos/"+id.String(), &event); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

// IsEnrolled asks the backend whether the participant is enrolled in the event.
func (c *Client) IsEnrolled(ctx context.Context, id uuid.UUID) (bool, error) {
	var reply struct {
		Enrolled bool `json:"inscrito"`
	}
	if err := c.getJSON(ctx, "/eventos/"+id.String()+"/inscrito", &reply); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return reply.Enrolled, nil
}

// Enroll registers the participant for the event. The backend answers the
// duplicate case with a conflict, surfaced as domain.ErrAlreadyEnrolled.
func (c *Client) Enroll(ctx context.Context, id uuid.UUID) error {
	if err := c.postJSON(ctx, "/inscricao-evento/"+id.String(), struct{}{}, nil, true); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusConflict:
				return domain.ErrAlreadyEnrolled
			case http.StatusNotFound:
				return domain.ErrNotFound
			}
		}
		return fmt.Errorf("enroll: %w", err)
	}
	return nil
}
