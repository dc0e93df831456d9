package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"qrcheckctl/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAuthAPI is an in-memory AuthAPI for tests.
type fakeAuthAPI struct {
	pair        domain.TokenPair
	err         error
	refreshPair domain.TokenPair
	refreshErr  error

	gotUsername string
	gotRefresh  string
}

func (f *fakeAuthAPI) Token(ctx context.Context, username, password string) (domain.TokenPair, error) {
	f.gotUsername = username
	if f.err != nil {
		return domain.TokenPair{}, f.err
	}
	return f.pair, nil
}

func (f *fakeAuthAPI) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	f.gotRefresh = refreshToken
	if f.refreshErr != nil {
		return domain.TokenPair{}, f.refreshErr
	}
	return f.refreshPair, nil
}

// fakePeople is an in-memory ParticipantAPI for tests.
type fakePeople struct {
	profile      *domain.Participant
	profileErr   error
	profileCalls int

	registerResult *domain.RegistrationResult
	registerErr    error
	gotReg         domain.Registration
}

func (f *fakePeople) Profile(ctx context.Context) (*domain.Participant, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakePeople) Register(ctx context.Context, reg domain.Registration) (*domain.RegistrationResult, error) {
	f.gotReg = reg
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakePeople) Occupations(ctx context.Context) ([]domain.Occupation, error) {
	return []domain.Occupation{{ID: 1, Name: "Estudante"}}, nil
}

func (f *fakePeople) Needs(ctx context.Context) ([]domain.Need, error) {
	return []domain.Need{{ID: 1, Name: "Libras"}}, nil
}

// staticInspector reports a fixed expiry verdict.
type staticInspector bool

func (s staticInspector) Expired(token string, now time.Time) bool { return bool(s) }

// fakeEventAPI is an in-memory EventAPI for tests.
type fakeEventAPI struct {
	events      []domain.Event
	eventsErr   error
	mine        []domain.Event
	mineErr     error
	mineCalls   int
	history     []domain.Event
	historyErr  error
	enrolledSet map[uuid.UUID]bool
	enrollErr   error
	enrollCalls int
}

func (f *fakeEventAPI) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

func (f *fakeEventAPI) ListMyEvents(ctx context.Context) ([]domain.Event, error) {
	f.mineCalls++
	if f.mineErr != nil {
		return nil, f.mineErr
	}
	return f.mine, nil
}

func (f *fakeEventAPI) ListAllRegistrations(ctx context.Context) ([]domain.Event, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeEventAPI) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	for i := range f.events {
		if f.events[i].PublicID == id {
			return &f.events[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventAPI) IsEnrolled(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.enrolledSet[id], nil
}

func (f *fakeEventAPI) Enroll(ctx context.Context, id uuid.UUID) error {
	f.enrollCalls++
	if f.enrollErr != nil {
		return f.enrollErr
	}
	if f.enrolledSet == nil {
		f.enrolledSet = make(map[uuid.UUID]bool)
	}
	f.enrolledSet[id] = true
	for i := range f.events {
		if f.events[i].PublicID == id {
			f.mine = append(f.mine, f.events[i])
		}
	}
	return nil
}
