// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
// On the wire it is a one-key object: {"<field>": "<message>"}.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{f.Field: f.Message})
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// Kind classifies a service error so callers never branch on message text.
type Kind int

const (
	KindInfra Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "infra"
	}
}

// Error is a domain error whose message is safe to show to clients.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf classifies any error coming out of a service or repository.
func KindOf(err error) Kind {
	var de *Error
	switch {
	case err == nil:
		return KindInfra
	case errors.As(err, &de):
		return de.Kind
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, repository.ErrNotFound):
		return KindNotFound
	case errors.Is(err, repository.ErrAlreadyExists), errors.Is(err, repository.ErrConflict):
		return KindConflict
	default:
		return KindInfra
	}
}

// PasswordHasher is the bcrypt-like primitive the user service delegates to.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer signs bearer tokens for authenticated identities.
type TokenIssuer interface {
	Issue(id model.Identity) (string, error)
}

// UserService defines registration and login use cases.
type UserService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (model.UserView, error)
	RegisterAdmin(ctx context.Context, in RegisterInput) (model.UserView, error)
	Login(ctx context.Context, in LoginInput) (string, error)
}

// TeamService defines team-oriented use cases. Mutations take the acting identity
// for ownership checks; GetTeam/ListTeams return public projections.
type TeamService interface {
	CreateTeam(ctx context.Context, actor model.Identity, in TeamInput) (model.Team, error)
	UpdateTeam(ctx context.Context, actor model.Identity, id string, in TeamInput) (model.Team, error)
	DeleteTeam(ctx context.Context, actor model.Identity, id string) error
	GetTeam(ctx context.Context, id string) (model.Team, error)
	AdminGetTeam(ctx context.Context, id string) (model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
}

// FixtureService defines fixture-oriented use cases.
type FixtureService interface {
	CreateFixture(ctx context.Context, actor model.Identity, in FixtureInput) (model.Fixture, error)
	UpdateFixture(ctx context.Context, actor model.Identity, id string, in FixtureInput) (model.Fixture, error)
	DeleteFixture(ctx context.Context, actor model.Identity, id string) error
	GetFixture(ctx context.Context, id string) (model.Fixture, error)
	AdminGetFixture(ctx context.Context, id string) (model.Fixture, error)
	ListFixtures(ctx context.Context) ([]model.Fixture, error)
}

// SearchService defines the public search use cases.
type SearchService interface {
	SearchTeams(ctx context.Context, name *string) ([]model.Team, error)
	SearchFixtures(ctx context.Context, q model.SearchQuery) ([]model.Fixture, error)
}

var (
	errNotAdmin = newError(KindUnauthorized, "unauthorized: you are not an admin", nil)
	errNotOwner = newError(KindUnauthorized, "unauthorized: you are not the owner", nil)
)

// requireAdmin re-checks the role the router already gated on.
func requireAdmin(actor model.Identity) error {
	if actor.Role != model.RoleAdmin {
		return errNotAdmin
	}
	return nil
}
