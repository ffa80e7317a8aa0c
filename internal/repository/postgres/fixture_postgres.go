package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
)

type fixtureRepository struct{ pool *pgxpool.Pool }

func NewFixtureRepository(pool *pgxpool.Pool) repository.FixtureRepository {
	return &fixtureRepository{pool: pool}
}

// fixtureSelect joins both team references so every read returns {_id, name} pairs.
const fixtureSelect = `
	SELECT f.id, f.home_id, h.name, f.away_id, a.name, f.matchday, f.matchtime,
	       f.admin_id, f.created_at, f.updated_at
	FROM fixtures f
	JOIN teams h ON h.id = f.home_id
	JOIN teams a ON a.id = f.away_id`

func (r *fixtureRepository) Create(ctx context.Context, f model.Fixture) (model.Fixture, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Fixture{}, err
	}
	exec := getQ(ctx, r.pool)
	var id string
	err := exec.QueryRow(ctx,
		`INSERT INTO fixtures (id, home_id, away_id, matchday, matchtime, admin_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		newID(), f.Home.ID, f.Away.ID, f.Matchday, f.Matchtime, f.AdminID,
	).Scan(&id)
	if err != nil {
		return model.Fixture{}, repository.MapPgError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *fixtureRepository) Update(ctx context.Context, f model.Fixture) (model.Fixture, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Fixture{}, err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx,
		`UPDATE fixtures
		 SET home_id = $2, away_id = $3, matchday = $4, matchtime = $5, updated_at = now()
		 WHERE id = $1`,
		f.ID, f.Home.ID, f.Away.ID, f.Matchday, f.Matchtime,
	)
	if err != nil {
		return model.Fixture{}, repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.Fixture{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, f.ID)
}

func (r *fixtureRepository) Delete(ctx context.Context, id string) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM fixtures WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *fixtureRepository) GetByID(ctx context.Context, id string) (model.Fixture, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Fixture{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, fixtureSelect+` WHERE f.id = $1`, id)
	return scanFixture(row)
}

func (r *fixtureRepository) GetByTeams(ctx context.Context, homeID, awayID string) (model.Fixture, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Fixture{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		fixtureSelect+` WHERE f.home_id = $1 AND f.away_id = $2`, homeID, awayID,
	)
	return scanFixture(row)
}

func (r *fixtureRepository) List(ctx context.Context) ([]model.Fixture, error) {
	return r.query(ctx, fixtureSelect+` ORDER BY f.created_at, f.id`)
}

// Find builds the WHERE clause from the non-nil filter fields. Team constraints
// are set membership, matchday/matchtime are exact string equality.
func (r *fixtureRepository) Find(ctx context.Context, f repository.FixtureFilter) ([]model.Fixture, error) {
	if (f.HomeIDs != nil && len(f.HomeIDs) == 0) || (f.AwayIDs != nil && len(f.AwayIDs) == 0) {
		return []model.Fixture{}, nil
	}

	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.HomeIDs != nil {
		add("f.home_id = ANY($%d)", f.HomeIDs)
	}
	if f.AwayIDs != nil {
		add("f.away_id = ANY($%d)", f.AwayIDs)
	}
	if f.Matchday != nil {
		add("f.matchday = $%d", *f.Matchday)
	}
	if f.Matchtime != nil {
		add("f.matchtime = $%d", *f.Matchtime)
	}

	sql := fixtureSelect
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	return r.query(ctx, sql+" ORDER BY f.created_at, f.id", args...)
}

func (r *fixtureRepository) query(ctx context.Context, sql string, args ...any) ([]model.Fixture, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.Fixture, 0)
	for rows.Next() {
		fx, err := scanFixture(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fx)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func scanFixture(row rowScanner) (model.Fixture, error) {
	var out model.Fixture
	err := row.Scan(
		&out.ID,
		&out.Home.ID, &out.Home.Name,
		&out.Away.ID, &out.Away.Name,
		&out.Matchday, &out.Matchtime,
		&out.AdminID, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return model.Fixture{}, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.FixtureRepository = (*fixtureRepository)(nil)
