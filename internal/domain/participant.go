package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for participant operations.
var (
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrInvalidRegistration = errors.New("invalid registration data")
)

var nonDigits = regexp.MustCompile(`\D`)

// Participant represents the authenticated participant's profile. PublicID is
// the non-sequential identifier embedded in the admission QR code.
type Participant struct {
	PublicID     uuid.UUID `json:"id_public"`
	Name         string    `json:"nome"`
	Surname      string    `json:"sobrenome"`
	CPF          string    `json:"cpf"`
	Email        string    `json:"email"`
	BirthDate    Timestamp `json:"data_nasc"`
	OccupationID int       `json:"ocupacao_id"`
	NeedIDs      []int     `json:"necessidades_especificas"`
}

// FullName returns the participant's display name.
func (p *Participant) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}

// Registration is the payload for creating a participant. The backend's
// authoritative field names are data_nasc and necessidades_especificas; older
// frontend revisions used nascimento/necessidades and are not supported.
type Registration struct {
	Name            string    `json:"nome"`
	Surname         string    `json:"sobrenome"`
	CPF             string    `json:"cpf"`
	Email           string    `json:"email"`
	Password        string    `json:"senha"`
	BirthDate       Timestamp `json:"data_nasc"`
	OccupationID    int       `json:"ocupacao_id"`
	OccupationOther string    `json:"ocupacao_outro,omitempty"`
	NeedIDs         []int     `json:"necessidades_especificas"`
	CustomNeeds     []string  `json:"necessidades_personalizadas"`
}

// Normalize strips formatting the backend rejects, such as CPF punctuation,
// and defaults optional collections so they encode as [] rather than null.
func (r *Registration) Normalize() {
	r.CPF = nonDigits.ReplaceAllString(r.CPF, "")
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.NeedIDs == nil {
		r.NeedIDs = []int{}
	}
	if r.CustomNeeds == nil {
		r.CustomNeeds = []string{}
	}
}

// RegistrationResult is the backend's answer to a registration. Token is only
// populated when the backend chooses to log the new participant in directly.
type RegistrationResult struct {
	Participant Participant
	Token       *TokenPair
}

// Occupation is a registration lookup value.
type Occupation struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

// Need is an accessibility-need registration lookup value.
type Need struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

// ParticipantAPI defines the backend participant endpoints the client consumes.
type ParticipantAPI interface {
	Profile(ctx context.Context) (*Participant, error)
	Register(ctx context.Context, reg Registration) (*RegistrationResult, error)
	Occupations(ctx context.Context) ([]Occupation, error)
	Needs(ctx context.Context) ([]Need, error)
}
