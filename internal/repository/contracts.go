package repository

import (
	"context"

	"github.com/maxviazov/league-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// Check-then-write sequences run inside it so the read and the write see the same snapshot.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// UserRepository declares persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// TeamRepository declares persistence operations for teams.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	Update(ctx context.Context, t model.Team) (model.Team, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (model.Team, error)
	GetByName(ctx context.Context, name string) (model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
	Exists(ctx context.Context, id string) (bool, error)
	// SearchByName does a case-insensitive substring match. An empty fragment matches every team.
	SearchByName(ctx context.Context, fragment string) ([]model.Team, error)
}

// FixtureFilter narrows a fixture query. Nil fields are not constrained;
// a non-nil empty id slice matches nothing.
type FixtureFilter struct {
	HomeIDs   []string
	AwayIDs   []string
	Matchday  *string
	Matchtime *string
}

// FixtureRepository declares persistence operations for fixtures.
// Reads always join home/away to their team names.
type FixtureRepository interface {
	Create(ctx context.Context, f model.Fixture) (model.Fixture, error)
	Update(ctx context.Context, f model.Fixture) (model.Fixture, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (model.Fixture, error)
	GetByTeams(ctx context.Context, homeID, awayID string) (model.Fixture, error)
	List(ctx context.Context) ([]model.Fixture, error)
	Find(ctx context.Context, f FixtureFilter) ([]model.Fixture, error)
}
