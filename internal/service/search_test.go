package service_test

import (
	"context"
	"testing"

	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_Table(t *testing.T) {
	seen := map[string]bool{}
	for m := service.Mask(0); m < 16; m++ {
		name, ok := service.Strategy(m)
		if m == 0 || m == service.MaskHome|service.MaskAway|service.MaskMatchday|service.MaskMatchtime {
			assert.False(t, ok, "mask %d has no strategy", m)
			continue
		}
		require.True(t, ok, "mask %d", m)
		assert.False(t, seen[name], "strategy %q used twice", name)
		seen[name] = true
	}
	assert.Len(t, seen, 14)

	name, _ := service.Strategy(service.MaskOf(model.SearchQuery{Away: strPtr("x"), Matchtime: strPtr("y")}))
	assert.Equal(t, "away+matchtime", name)
}

type searchEnv struct {
	svc      service.SearchService
	teams    *fakeTeamRepo
	fixtures *fakeFixtureRepo
}

// newSearchEnv seeds two Manchester clubs and a handful of fixtures.
func newSearchEnv() searchEnv {
	teams := newFakeTeamRepo()
	fixtures := newFakeFixtureRepo(teams)
	united := teams.seed("Manchester United", admin)
	city := teams.seed("Manchester City", admin)
	arsenal := teams.seed("Arsenal", admin)
	chelsea := teams.seed("Chelsea", admin)

	fixtures.seed(united, arsenal, "20-12-2030", "10:30", admin)
	fixtures.seed(city, chelsea, "20-12-2030", "15:00", admin)
	fixtures.seed(arsenal, chelsea, "21-12-2030", "10:30", admin)
	fixtures.seed(chelsea, united, "22-12-2030", "18:00", admin)

	return searchEnv{
		svc:      service.NewSearchService(teams, fixtures, newRules(), testLogger),
		teams:    teams,
		fixtures: fixtures,
	}
}

func TestSearchService_SearchFixtures(t *testing.T) {
	cases := []struct {
		name string
		q    model.SearchQuery
		want int
	}{
		{"home name matches any club", model.SearchQuery{Home: strPtr("manchester")}, 2},
		{"away only", model.SearchQuery{Away: strPtr("CHEL")}, 2},
		{"home and away", model.SearchQuery{Home: strPtr("ars"), Away: strPtr("chelsea")}, 1},
		{"matchday only", model.SearchQuery{Matchday: strPtr("20-12-2030")}, 2},
		{"matchtime only", model.SearchQuery{Matchtime: strPtr("10:30")}, 2},
		{"matchday and matchtime", model.SearchQuery{Matchday: strPtr("20-12-2030"), Matchtime: strPtr("15:00")}, 1},
		{"home and matchday", model.SearchQuery{Home: strPtr("man"), Matchday: strPtr("20-12-2030")}, 2},
		{"three fields", model.SearchQuery{Away: strPtr("united"), Matchday: strPtr("22-12-2030"), Matchtime: strPtr("18:00")}, 1},
		{"no match on day", model.SearchQuery{Matchday: strPtr("01-01-2031")}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newSearchEnv()
			got, err := env.svc.SearchFixtures(context.Background(), tc.q)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
			for _, fx := range got {
				assert.Empty(t, fx.AdminID)
				assert.NotEmpty(t, fx.Home.Name)
			}
		})
	}
}

func TestSearchService_SearchFixtures_NoStrategy(t *testing.T) {
	full := model.SearchQuery{
		Home: strPtr("man"), Away: strPtr("che"), Matchday: strPtr("20-12-2030"), Matchtime: strPtr("15:00"),
	}
	for name, q := range map[string]model.SearchQuery{"empty": {}, "full": full} {
		t.Run(name, func(t *testing.T) {
			env := newSearchEnv()
			got, err := env.svc.SearchFixtures(context.Background(), q)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
			assert.Zero(t, env.fixtures.findCalls)
		})
	}
}

func TestSearchService_SearchFixtures_UnknownTeamSkipsFixtureQuery(t *testing.T) {
	env := newSearchEnv()
	got, err := env.svc.SearchFixtures(context.Background(), model.SearchQuery{Home: strPtr("Liverpool")})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, env.fixtures.findCalls)
}

func TestSearchService_SearchFixtures_Validation(t *testing.T) {
	env := newSearchEnv()
	_, err := env.svc.SearchFixtures(context.Background(), model.SearchQuery{Home: strPtr("ma"), Matchtime: strPtr("25:00")})
	assert.Equal(t, service.KindValidation, service.KindOf(err))
	assert.Len(t, service.FieldErrors(err), 2)
	assert.Zero(t, env.teams.searchCalls)
}

func TestSearchService_SearchTeams(t *testing.T) {
	env := newSearchEnv()
	ctx := context.Background()

	got, err := env.svc.SearchTeams(ctx, strPtr("MANCH"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, team := range got {
		assert.Empty(t, team.AdminID)
	}

	all, err := env.svc.SearchTeams(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := env.svc.SearchTeams(ctx, strPtr("Liverpool"))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = env.svc.SearchTeams(ctx, strPtr("ab"))
	assert.Equal(t, service.KindValidation, service.KindOf(err))
}
