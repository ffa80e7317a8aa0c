package service_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/rs/zerolog"
)

var (
	testLogger = zerolog.New(io.Discard)
	// fixed "now" for every date rule in this package
	testNow = time.Date(2030, time.June, 15, 12, 0, 0, 0, time.Local)
)

func newRules() *service.Rules {
	return service.NewRules(clockwork.NewFakeClockAt(testNow))
}

func strPtr(s string) *string { return &s }

func hexID(n int) string { return fmt.Sprintf("%024x", n) }

var (
	admin      = model.Identity{ID: hexID(9001), Role: model.RoleAdmin}
	otherAdmin = model.Identity{ID: hexID(9002), Role: model.RoleAdmin}
	plainUser  = model.Identity{ID: hexID(9003), Role: model.RoleUser}
)

// fakeTx runs fn directly; the fakes have no isolation to provide.
type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}

type fakeUserRepo struct {
	next  int
	items map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{next: 1, items: map[string]model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u model.User) (model.User, error) {
	if _, ok := f.items[u.Email]; ok {
		return model.User{}, repository.ErrAlreadyExists
	}
	u.ID = hexID(f.next)
	f.next++
	f.items[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.items[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type fakeTeamRepo struct {
	next        int
	items       map[string]model.Team
	deleteErr   error
	searchCalls int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{next: 1, items: map[string]model.Team{}}
}

func (f *fakeTeamRepo) Create(_ context.Context, t model.Team) (model.Team, error) {
	if _, err := f.GetByName(context.Background(), t.Name); err == nil {
		return model.Team{}, repository.ErrAlreadyExists
	}
	t.ID = hexID(f.next)
	f.next++
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, t model.Team) (model.Team, error) {
	cur, ok := f.items[t.ID]
	if !ok {
		return model.Team{}, repository.ErrNotFound
	}
	cur.Name = t.Name
	f.items[t.ID] = cur
	return cur, nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id string) (model.Team, error) {
	t, ok := f.items[id]
	if !ok {
		return model.Team{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTeamRepo) GetByName(_ context.Context, name string) (model.Team, error) {
	for _, t := range f.items {
		if t.Name == name {
			return t, nil
		}
	}
	return model.Team{}, repository.ErrNotFound
}

func (f *fakeTeamRepo) List(_ context.Context) ([]model.Team, error) {
	return f.sorted(func(model.Team) bool { return true }), nil
}

func (f *fakeTeamRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeTeamRepo) SearchByName(_ context.Context, fragment string) ([]model.Team, error) {
	f.searchCalls++
	frag := strings.ToLower(fragment)
	return f.sorted(func(t model.Team) bool {
		return strings.Contains(strings.ToLower(t.Name), frag)
	}), nil
}

func (f *fakeTeamRepo) sorted(keep func(model.Team) bool) []model.Team {
	out := []model.Team{}
	for _, t := range f.items {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeTeamRepo) seed(name string, owner model.Identity) model.Team {
	t, err := f.Create(context.Background(), model.Team{Name: name, AdminID: owner.ID})
	if err != nil {
		panic(err)
	}
	return t
}

type fakeFixtureRepo struct {
	next      int
	teams     *fakeTeamRepo
	items     map[string]model.Fixture
	findCalls int
	writeErr  error
}

func newFakeFixtureRepo(teams *fakeTeamRepo) *fakeFixtureRepo {
	return &fakeFixtureRepo{next: 1, teams: teams, items: map[string]model.Fixture{}}
}

func (f *fakeFixtureRepo) join(fx model.Fixture) model.Fixture {
	fx.Home.Name = f.teams.items[fx.Home.ID].Name
	fx.Away.Name = f.teams.items[fx.Away.ID].Name
	return fx
}

func (f *fakeFixtureRepo) Create(ctx context.Context, fx model.Fixture) (model.Fixture, error) {
	if f.writeErr != nil {
		return model.Fixture{}, f.writeErr
	}
	if _, err := f.GetByTeams(ctx, fx.Home.ID, fx.Away.ID); err == nil {
		return model.Fixture{}, repository.ErrAlreadyExists
	}
	fx.ID = hexID(1000 + f.next)
	f.next++
	f.items[fx.ID] = fx
	return f.join(fx), nil
}

func (f *fakeFixtureRepo) Update(_ context.Context, fx model.Fixture) (model.Fixture, error) {
	if f.writeErr != nil {
		return model.Fixture{}, f.writeErr
	}
	cur, ok := f.items[fx.ID]
	if !ok {
		return model.Fixture{}, repository.ErrNotFound
	}
	cur.Home, cur.Away, cur.Matchday, cur.Matchtime = fx.Home, fx.Away, fx.Matchday, fx.Matchtime
	f.items[fx.ID] = cur
	return f.join(cur), nil
}

func (f *fakeFixtureRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeFixtureRepo) GetByID(_ context.Context, id string) (model.Fixture, error) {
	fx, ok := f.items[id]
	if !ok {
		return model.Fixture{}, repository.ErrNotFound
	}
	return f.join(fx), nil
}

func (f *fakeFixtureRepo) GetByTeams(_ context.Context, homeID, awayID string) (model.Fixture, error) {
	for _, fx := range f.items {
		if fx.Home.ID == homeID && fx.Away.ID == awayID {
			return f.join(fx), nil
		}
	}
	return model.Fixture{}, repository.ErrNotFound
}

func (f *fakeFixtureRepo) List(ctx context.Context) ([]model.Fixture, error) {
	return f.Find(ctx, repository.FixtureFilter{})
}

func (f *fakeFixtureRepo) Find(_ context.Context, filter repository.FixtureFilter) ([]model.Fixture, error) {
	f.findCalls++
	out := []model.Fixture{}
	for _, fx := range f.items {
		if filter.HomeIDs != nil && !contains(filter.HomeIDs, fx.Home.ID) {
			continue
		}
		if filter.AwayIDs != nil && !contains(filter.AwayIDs, fx.Away.ID) {
			continue
		}
		if filter.Matchday != nil && *filter.Matchday != fx.Matchday {
			continue
		}
		if filter.Matchtime != nil && *filter.Matchtime != fx.Matchtime {
			continue
		}
		out = append(out, f.join(fx))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFixtureRepo) seed(home, away model.Team, day, tm string, owner model.Identity) model.Fixture {
	fx, err := f.Create(context.Background(), model.Fixture{
		Home: model.TeamRef{ID: home.ID}, Away: model.TeamRef{ID: away.ID},
		Matchday: day, Matchtime: tm, AdminID: owner.ID,
	})
	if err != nil {
		panic(err)
	}
	return fx
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeHasher struct{}

func (fakeHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (fakeHasher) Verify(h, p string) bool       { return h == "hashed:"+p }

type fakeTokens struct{ issued []model.Identity }

func (f *fakeTokens) Issue(id model.Identity) (string, error) {
	f.issued = append(f.issued, id)
	return "token-" + id.ID, nil
}

var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.TeamRepository    = (*fakeTeamRepo)(nil)
	_ repository.FixtureRepository = (*fakeFixtureRepo)(nil)
	_ repository.TxManager         = (*fakeTx)(nil)
)
