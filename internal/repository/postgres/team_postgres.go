package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
)

type teamRepository struct{ pool *pgxpool.Pool }

func NewTeamRepository(pool *pgxpool.Pool) repository.TeamRepository {
	return &teamRepository{pool: pool}
}

const teamColumns = `id, name, admin_id, created_at, updated_at`

func (r *teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO teams (id, name, admin_id) VALUES ($1, $2, $3)
		 RETURNING `+teamColumns,
		newID(), t.Name, t.AdminID,
	)
	return scanTeam(row)
}

func (r *teamRepository) Update(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE teams SET name = $2, updated_at = now() WHERE id = $1
		 RETURNING `+teamColumns,
		t.ID, t.Name,
	)
	return scanTeam(row)
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	return scanTeam(row)
}

func (r *teamRepository) GetByName(ctx context.Context, name string) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE name = $1`, name)
	return scanTeam(row)
}

func (r *teamRepository) List(ctx context.Context) ([]model.Team, error) {
	return r.query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at, id`)
}

func (r *teamRepository) SearchByName(ctx context.Context, fragment string) ([]model.Team, error) {
	return r.query(ctx,
		`SELECT `+teamColumns+` FROM teams
		 WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
		 ORDER BY name, id`,
		escapeLike(fragment),
	)
}

// Exists performs a lightweight check to see if a team with the given ID exists.
func (r *teamRepository) Exists(ctx context.Context, id string) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

func (r *teamRepository) query(ctx context.Context, sql string, args ...any) ([]model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func scanTeam(row rowScanner) (model.Team, error) {
	var out model.Team
	if err := row.Scan(&out.ID, &out.Name, &out.AdminID, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Team{}, repository.MapPgError(err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so user input is matched literally.
func escapeLike(s string) string { return likeEscaper.Replace(s) }

var _ repository.TeamRepository = (*teamRepository)(nil)
