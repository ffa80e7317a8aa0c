package service_test

import (
	"context"
	"testing"

	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureEnv struct {
	svc      service.FixtureService
	teams    *fakeTeamRepo
	fixtures *fakeFixtureRepo
	home     model.Team
	away     model.Team
}

func newFixtureEnv() fixtureEnv {
	teams := newFakeTeamRepo()
	fixtures := newFakeFixtureRepo(teams)
	env := fixtureEnv{
		svc:      service.NewFixtureService(fixtures, teams, &fakeTx{}, newRules(), testLogger),
		teams:    teams,
		fixtures: fixtures,
	}
	env.home = teams.seed("Arsenal", admin)
	env.away = teams.seed("Chelsea", admin)
	return env
}

func TestFixtureService_CreateFixture_RoundTrip(t *testing.T) {
	env := newFixtureEnv()
	ctx := context.Background()

	created, err := env.svc.CreateFixture(ctx, admin, fixtureInput(env.home.ID, env.away.ID, "20-12-2030", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, model.TeamRef{ID: env.home.ID, Name: "Arsenal"}, created.Home)
	assert.Equal(t, model.TeamRef{ID: env.away.ID, Name: "Chelsea"}, created.Away)
	assert.Equal(t, admin.ID, created.AdminID)

	got, err := env.svc.GetFixture(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "20-12-2030", got.Matchday)
	assert.Equal(t, "10:30", got.Matchtime)
	assert.Empty(t, got.AdminID)

	all, err := env.svc.ListFixtures(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFixtureService_CreateFixture_Rejections(t *testing.T) {
	env := newFixtureEnv()
	ctx := context.Background()

	_, err := env.svc.CreateFixture(ctx, plainUser, fixtureInput(env.home.ID, env.away.ID, "20-12-2030", "10:30"))
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))

	_, err = env.svc.CreateFixture(ctx, admin, fixtureInput(env.home.ID, env.away.ID, "01-01-2030", "10:30"))
	assert.Equal(t, map[string]string{"matchday": "matchday cannot be in the past"}, fields(service.FieldErrors(err)))

	_, err = env.svc.CreateFixture(ctx, admin, fixtureInput(env.home.ID, hexID(4242), "20-12-2030", "10:30"))
	assert.Equal(t, service.KindValidation, service.KindOf(err))
	assert.Equal(t, map[string]string{"away": "team does not exist"}, fields(service.FieldErrors(err)))
	assert.Empty(t, env.fixtures.items, "no fixture stored")
}

func TestFixtureService_CreateFixture_DuplicatePair(t *testing.T) {
	env := newFixtureEnv()
	ctx := context.Background()
	in := fixtureInput(env.home.ID, env.away.ID, "20-12-2030", "10:30")

	_, err := env.svc.CreateFixture(ctx, admin, in)
	require.NoError(t, err)

	_, err = env.svc.CreateFixture(ctx, admin, in)
	assert.Equal(t, service.KindConflict, service.KindOf(err))
	assert.EqualError(t, err, "this fixture already exists")

	// reversed pair is a separate fixture
	_, err = env.svc.CreateFixture(ctx, admin, fixtureInput(env.away.ID, env.home.ID, "21-12-2030", "10:30"))
	assert.NoError(t, err)
}

func TestFixtureService_UpdateFixture(t *testing.T) {
	env := newFixtureEnv()
	ctx := context.Background()
	fx := env.fixtures.seed(env.home, env.away, "20-12-2030", "10:30", admin)

	// past days stay editable
	updated, err := env.svc.UpdateFixture(ctx, admin, fx.ID, fixtureInput(env.home.ID, env.away.ID, "01-01-2020", "18:45"))
	require.NoError(t, err)
	assert.Equal(t, "01-01-2020", updated.Matchday)
	assert.Equal(t, "18:45", updated.Matchtime)

	_, err = env.svc.UpdateFixture(ctx, otherAdmin, fx.ID, fixtureInput(env.home.ID, env.away.ID, "20-12-2030", "10:30"))
	assert.EqualError(t, err, "unauthorized: you are not the owner")

	_, err = env.svc.UpdateFixture(ctx, admin, hexID(5555), fixtureInput(env.home.ID, env.away.ID, "20-12-2030", "10:30"))
	assert.EqualError(t, err, "no fixture found")
}

func TestFixtureService_UpdateFixture_PairTaken(t *testing.T) {
	env := newFixtureEnv()
	ctx := context.Background()
	third := env.teams.seed("Everton", admin)
	env.fixtures.seed(env.home, env.away, "20-12-2030", "10:30", admin)
	other := env.fixtures.seed(env.home, third, "21-12-2030", "10:30", admin)

	_, err := env.svc.UpdateFixture(ctx, admin, other.ID, fixtureInput(env.home.ID, env.away.ID, "21-12-2030", "10:30"))
	assert.Equal(t, service.KindConflict, service.KindOf(err))
}

func TestFixtureService_DeleteFixture(t *testing.T) {
	env := newFixtureEnv()
	ctx := context.Background()
	fx := env.fixtures.seed(env.home, env.away, "20-12-2030", "10:30", admin)

	assert.Equal(t, service.KindUnauthorized, service.KindOf(env.svc.DeleteFixture(ctx, otherAdmin, fx.ID)))
	assert.Equal(t, service.KindValidation, service.KindOf(env.svc.DeleteFixture(ctx, admin, "x")))

	require.NoError(t, env.svc.DeleteFixture(ctx, admin, fx.ID))
	_, err := env.svc.GetFixture(ctx, fx.ID)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestFixtureService_TeamDeletedDuringWrite(t *testing.T) {
	env := newFixtureEnv()
	ctx := context.Background()
	existing := env.fixtures.seed(env.home, env.away, "20-12-2030", "10:30", admin)
	// the store reports the foreign key violation of a team removed after the existence check
	env.fixtures.writeErr = repository.ErrConflict

	_, err := env.svc.CreateFixture(ctx, admin, fixtureInput(env.away.ID, env.home.ID, "21-12-2030", "10:30"))
	assert.Equal(t, service.KindConflict, service.KindOf(err))
	assert.EqualError(t, err, "team does not exist")

	_, err = env.svc.UpdateFixture(ctx, admin, existing.ID, fixtureInput(env.home.ID, env.away.ID, "22-12-2030", "18:00"))
	assert.Equal(t, service.KindConflict, service.KindOf(err))
	assert.EqualError(t, err, "team does not exist")
}

func TestFixtureService_CreateFixture_ChecksTeamsInsideTx(t *testing.T) {
	teams := newFakeTeamRepo()
	fixtures := newFakeFixtureRepo(teams)
	tx := &fakeTx{}
	svc := service.NewFixtureService(fixtures, teams, tx, newRules(), testLogger)
	home := teams.seed("Arsenal", admin)

	_, err := svc.CreateFixture(context.Background(), admin, fixtureInput(home.ID, hexID(4242), "20-12-2030", "10:30"))
	assert.Equal(t, map[string]string{"away": "team does not exist"}, fields(service.FieldErrors(err)))
	assert.Equal(t, 1, tx.calls)
}
