// Package contract holds storage-agnostic test suites every repository
// implementation must pass.
package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
)

// MakeAdmin seeds an admin account and returns its id.
type MakeAdmin func(ctx context.Context) (string, error)

type UserFactory func(t *testing.T) (repository.UserRepository, func())

type TeamFactory func(t *testing.T) (repository.TeamRepository, MakeAdmin, func())

type FixtureFactory func(t *testing.T) (repo repository.FixtureRepository, teams repository.TeamRepository, mkAdmin MakeAdmin, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, teams repository.TeamRepository, mkAdmin MakeAdmin, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func strPtr(s string) *string { return &s }

func RunUserRepositoryContract(t *testing.T, makeRepo UserFactory) {
	t.Helper()

	t.Run("create_and_get_by_email", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "h", Role: model.RoleAdmin})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if len(created.ID) != 24 {
			t.Fatalf("expected 24 char id, got %q", created.ID)
		}
		got, err := repo.GetByEmail(ctx, "ann@example.com")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Role != model.RoleAdmin || got.PasswordHash != "h" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("duplicate_email_already_exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		u := model.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "h", Role: model.RoleUser}
		if _, err := repo.Create(ctx, u); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, u); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunTeamRepositoryContract(t *testing.T, makeRepo TeamFactory) {
	t.Helper()

	t.Run("create_get_update_delete", func(t *testing.T) {
		repo, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, err := mkAdmin(ctx)
		if err != nil {
			t.Fatalf("seed admin: %v", err)
		}
		created, err := repo.Create(ctx, model.Team{Name: "Watford", AdminID: adminID})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil || got.Name != "Watford" || got.AdminID != adminID {
			t.Fatalf("get mismatch: %+v err=%v", got, err)
		}
		updated, err := repo.Update(ctx, model.Team{ID: created.ID, Name: "Watford FC"})
		if err != nil || updated.Name != "Watford FC" || updated.AdminID != adminID {
			t.Fatalf("update mismatch: %+v err=%v", updated, err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("duplicate_name_is_case_sensitive", func(t *testing.T) {
		repo, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, _ := mkAdmin(ctx)
		if _, err := repo.Create(ctx, model.Team{Name: "Chelsea", AdminID: adminID}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, model.Team{Name: "Chelsea", AdminID: adminID}); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		if _, err := repo.Create(ctx, model.Team{Name: "chelsea", AdminID: adminID}); err != nil {
			t.Fatalf("different case should be accepted by default collation: %v", err)
		}
		if _, err := repo.GetByName(ctx, "Chelsea"); err != nil {
			t.Fatalf("get by name: %v", err)
		}
	})

	t.Run("search_by_name_substring", func(t *testing.T) {
		repo, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, _ := mkAdmin(ctx)
		for _, name := range []string{"Manchester United", "Manchester City", "Arsenal", "100% FC"} {
			if _, err := repo.Create(ctx, model.Team{Name: name, AdminID: adminID}); err != nil {
				t.Fatalf("seed %s: %v", name, err)
			}
		}
		got, err := repo.SearchByName(ctx, "mANCHEster")
		if err != nil || len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d err=%v", len(got), err)
		}
		got, err = repo.SearchByName(ctx, "%")
		if err != nil || len(got) != 1 || got[0].Name != "100% FC" {
			t.Fatalf("wildcard must match literally, got %+v err=%v", got, err)
		}
		all, err := repo.SearchByName(ctx, "")
		if err != nil || len(all) != 4 {
			t.Fatalf("empty fragment should list all, got %d err=%v", len(all), err)
		}
	})

	t.Run("list_and_exists", func(t *testing.T) {
		repo, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, _ := mkAdmin(ctx)
		created, _ := repo.Create(ctx, model.Team{Name: "Leeds", AdminID: adminID})
		list, err := repo.List(ctx)
		if err != nil || len(list) != 1 {
			t.Fatalf("list: %+v err=%v", list, err)
		}
		ok, err := repo.Exists(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("expected team to exist, err=%v", err)
		}
		ok, err = repo.Exists(ctx, "ffffffffffffffffffffffff")
		if err != nil || ok {
			t.Fatalf("expected team to be missing, err=%v", err)
		}
	})
}

func RunFixtureRepositoryContract(t *testing.T, makeRepo FixtureFactory) {
	t.Helper()

	seed := func(t *testing.T, teams repository.TeamRepository, mkAdmin MakeAdmin, names ...string) (string, []model.Team) {
		t.Helper()
		ctx := context.Background()
		adminID, err := mkAdmin(ctx)
		if err != nil {
			t.Fatalf("seed admin: %v", err)
		}
		out := make([]model.Team, 0, len(names))
		for _, n := range names {
			team, err := teams.Create(ctx, model.Team{Name: n, AdminID: adminID})
			if err != nil {
				t.Fatalf("seed team %s: %v", n, err)
			}
			out = append(out, team)
		}
		return adminID, out
	}

	t.Run("create_and_get_joins_team_names", func(t *testing.T) {
		repo, teams, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, ts := seed(t, teams, mkAdmin, "Arsenal", "Chelsea")
		created, err := repo.Create(ctx, model.Fixture{
			Home: model.TeamRef{ID: ts[0].ID}, Away: model.TeamRef{ID: ts[1].ID},
			Matchday: "20-12-2050", Matchtime: "10:30", AdminID: adminID,
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Home != (model.TeamRef{ID: ts[0].ID, Name: "Arsenal"}) || got.Away != (model.TeamRef{ID: ts[1].ID, Name: "Chelsea"}) {
			t.Fatalf("teams not joined: %+v", got)
		}
		if got.Matchday != "20-12-2050" || got.Matchtime != "10:30" || got.AdminID != adminID {
			t.Fatalf("fields mismatch: %+v", got)
		}
	})

	t.Run("duplicate_pair_already_exists", func(t *testing.T) {
		repo, teams, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, ts := seed(t, teams, mkAdmin, "Arsenal", "Chelsea")
		fx := model.Fixture{Home: model.TeamRef{ID: ts[0].ID}, Away: model.TeamRef{ID: ts[1].ID}, Matchday: "20-12-2050", Matchtime: "10:30", AdminID: adminID}
		if _, err := repo.Create(ctx, fx); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, fx); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		// reversed pair is a different fixture
		fx.Home, fx.Away = fx.Away, fx.Home
		if _, err := repo.Create(ctx, fx); err != nil {
			t.Fatalf("reverse pair: %v", err)
		}
		if _, err := repo.GetByTeams(ctx, ts[1].ID, ts[0].ID); err != nil {
			t.Fatalf("get by teams: %v", err)
		}
	})

	t.Run("team_delete_blocked_by_fixture", func(t *testing.T) {
		repo, teams, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, ts := seed(t, teams, mkAdmin, "Arsenal", "Chelsea")
		if _, err := repo.Create(ctx, model.Fixture{Home: model.TeamRef{ID: ts[0].ID}, Away: model.TeamRef{ID: ts[1].ID}, Matchday: "20-12-2050", Matchtime: "10:30", AdminID: adminID}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := teams.Delete(ctx, ts[0].ID); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("find_by_filter", func(t *testing.T) {
		repo, teams, mkAdmin, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, ts := seed(t, teams, mkAdmin, "Arsenal", "Chelsea", "Everton")
		mk := func(h, a int, day, tm string) {
			if _, err := repo.Create(ctx, model.Fixture{Home: model.TeamRef{ID: ts[h].ID}, Away: model.TeamRef{ID: ts[a].ID}, Matchday: day, Matchtime: tm, AdminID: adminID}); err != nil {
				t.Fatalf("seed fixture: %v", err)
			}
		}
		mk(0, 1, "20-12-2050", "10:30")
		mk(0, 2, "21-12-2050", "10:30")
		mk(1, 2, "20-12-2050", "15:00")

		cases := []struct {
			name   string
			filter repository.FixtureFilter
			want   int
		}{
			{"no filter", repository.FixtureFilter{}, 3},
			{"home set", repository.FixtureFilter{HomeIDs: []string{ts[0].ID}}, 2},
			{"home set of two", repository.FixtureFilter{HomeIDs: []string{ts[0].ID, ts[1].ID}}, 3},
			{"away and matchday", repository.FixtureFilter{AwayIDs: []string{ts[2].ID}, Matchday: strPtr("20-12-2050")}, 1},
			{"matchtime", repository.FixtureFilter{Matchtime: strPtr("10:30")}, 2},
			{"empty id set", repository.FixtureFilter{HomeIDs: []string{}}, 0},
		}
		for _, tc := range cases {
			got, err := repo.Find(ctx, tc.filter)
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if len(got) != tc.want {
				t.Fatalf("%s: expected %d fixtures, got %d", tc.name, tc.want, len(got))
			}
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, teams, mkAdmin, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, _ := mkAdmin(ctx)
		var id string
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			created, err := teams.Create(ctx, model.Team{Name: "Committed", AdminID: adminID})
			id = created.ID
			return err
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}
		if _, err := teams.GetByID(ctx, id); err != nil {
			t.Fatalf("expected committed row, got %v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, teams, mkAdmin, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		adminID, _ := mkAdmin(ctx)
		boom := errors.New("boom")
		var id string
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			created, err := teams.Create(ctx, model.Team{Name: "RolledBack", AdminID: adminID})
			if err != nil {
				return err
			}
			id = created.ID
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := teams.GetByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()

	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})
}
