package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
)

type userRepository struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.User{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		newID(), u.Name, u.Email, u.PasswordHash, string(u.Role),
	)
	return scanUser(row)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.User{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	)
	return scanUser(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		out  model.User
		role string
	)
	if err := row.Scan(&out.ID, &out.Name, &out.Email, &out.PasswordHash, &role, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.User{}, repository.MapPgError(err)
	}
	out.Role = model.Role(role)
	return out, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
