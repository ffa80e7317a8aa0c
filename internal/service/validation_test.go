package service_test

import (
	"testing"

	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func fields(ferrs []service.FieldError) map[string]string {
	out := map[string]string{}
	for _, fe := range ferrs {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestRules_RegisterValidate(t *testing.T) {
	r := newRules()

	cases := []struct {
		name string
		in   service.RegisterInput
		want map[string]string
	}{
		{
			name: "all missing",
			in:   service.RegisterInput{},
			want: map[string]string{
				"name":     "name is required",
				"email":    "a valid email is required",
				"password": "password is required, atleast 6 characters",
			},
		},
		{
			name: "short password",
			in:   service.RegisterInput{Name: strPtr("Ann"), Email: strPtr("ann@example.com"), Password: strPtr("12345")},
			want: map[string]string{"password": "password is required, atleast 6 characters"},
		},
		{
			name: "bad email and blank name",
			in:   service.RegisterInput{Name: strPtr("   "), Email: strPtr("not-an-email"), Password: strPtr("123456")},
			want: map[string]string{"name": "name is required", "email": "a valid email is required"},
		},
		{
			name: "ok",
			in:   service.RegisterInput{Name: strPtr("Ann"), Email: strPtr("ann@example.com"), Password: strPtr("123456")},
			want: map[string]string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fields(r.RegisterValidate(tc.in)))
		})
	}
}

func TestRules_RegisterValidate_FieldOrder(t *testing.T) {
	ferrs := newRules().RegisterValidate(service.RegisterInput{})
	if assert.Len(t, ferrs, 3) {
		assert.Equal(t, "name", ferrs[0].Field)
		assert.Equal(t, "email", ferrs[1].Field)
		assert.Equal(t, "password", ferrs[2].Field)
	}
}

func TestRules_LoginValidate(t *testing.T) {
	r := newRules()
	assert.Empty(t, r.LoginValidate(service.LoginInput{Email: strPtr("a@b.co"), Password: strPtr("secret")}))
	assert.Equal(t,
		map[string]string{"email": "a valid email is required", "password": "password is required, atleast 6 characters"},
		fields(r.LoginValidate(service.LoginInput{})),
	)
}

func TestRules_TeamValidate(t *testing.T) {
	r := newRules()
	assert.Empty(t, r.TeamValidate(service.TeamInput{Name: strPtr("Chelsea")}))
	assert.Equal(t, map[string]string{"name": "team name is required"}, fields(r.TeamValidate(service.TeamInput{})))
	assert.Equal(t, map[string]string{"name": "team name is required"}, fields(r.TeamValidate(service.TeamInput{Name: strPtr("  ")})))
}

func fixtureInput(home, away, day, tm string) service.FixtureInput {
	return service.FixtureInput{Home: strPtr(home), Away: strPtr(away), Matchday: strPtr(day), Matchtime: strPtr(tm)}
}

func TestRules_FixtureValidate(t *testing.T) {
	r := newRules()
	home, away := hexID(1), hexID(2)

	cases := []struct {
		name string
		in   service.FixtureInput
		want map[string]string
	}{
		{"ok future", fixtureInput(home, away, "20-12-2030", "10:30"), map[string]string{}},
		{"ok today", fixtureInput(home, away, "15-06-2030", "00:00"), map[string]string{}},
		{"past day", fixtureInput(home, away, "14-06-2030", "10:30"), map[string]string{"matchday": "matchday cannot be in the past"}},
		{"wrong date format", fixtureInput(home, away, "2030-12-20", "10:30"), map[string]string{"matchday": "matchday must be a valid date in the format dd-mm-yyyy"}},
		{"impossible date", fixtureInput(home, away, "31-02-2031", "10:30"), map[string]string{"matchday": "matchday must be a valid date in the format dd-mm-yyyy"}},
		{"bad time", fixtureInput(home, away, "20-12-2030", "24:00"), map[string]string{"matchtime": "matchtime must be a valid time in the format HH:MM"}},
		{"short time", fixtureInput(home, away, "20-12-2030", "9:30"), map[string]string{"matchtime": "matchtime must be a valid time in the format HH:MM"}},
		{"bad ids", fixtureInput("xyz", "", "20-12-2030", "10:30"), map[string]string{
			"home": "a valid home team id is required",
			"away": "a valid away team id is required",
		}},
		{"same team", fixtureInput(home, home, "20-12-2030", "10:30"), map[string]string{"teams": "home and away teams cannot be the same"}},
		{"all absent", service.FixtureInput{}, map[string]string{
			"home":      "a valid home team id is required",
			"away":      "a valid away team id is required",
			"matchday":  "matchday must be a valid date in the format dd-mm-yyyy",
			"matchtime": "matchtime must be a valid time in the format HH:MM",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fields(r.FixtureValidate(tc.in)))
		})
	}
}

func TestRules_FixtureUpdateValidate_AllowsPastDay(t *testing.T) {
	r := newRules()
	in := fixtureInput(hexID(1), hexID(2), "01-01-2020", "10:30")
	assert.NotEmpty(t, r.FixtureValidate(in))
	assert.Empty(t, r.FixtureUpdateValidate(in))
}

func TestRules_TeamSearchValidate(t *testing.T) {
	r := newRules()
	assert.Empty(t, r.TeamSearchValidate(nil))
	assert.Empty(t, r.TeamSearchValidate(strPtr("che")))
	assert.Equal(t,
		map[string]string{"name": "a valid team name is required, atleast 3 characters"},
		fields(r.TeamSearchValidate(strPtr("ch"))),
	)
}

func TestRules_FixtureSearchValidate(t *testing.T) {
	r := newRules()
	assert.Empty(t, r.FixtureSearchValidate(model.SearchQuery{}))
	assert.Empty(t, r.FixtureSearchValidate(model.SearchQuery{Home: strPtr("man"), Matchday: strPtr("01-01-2020")}))

	got := fields(r.FixtureSearchValidate(model.SearchQuery{
		Home:      strPtr("ab"),
		Away:      strPtr(" a "),
		Matchday:  strPtr("1-1-2030"),
		Matchtime: strPtr("7pm"),
	}))
	assert.Equal(t, map[string]string{
		"home":      "a valid home team name is required, atleast 3 characters",
		"away":      "a valid away team name is required, atleast 3 characters",
		"matchday":  "matchday must be a valid date in the format dd-mm-yyyy",
		"matchtime": "matchtime must be a valid time in the format HH:MM",
	}, got)
}

func TestRules_IDValidate(t *testing.T) {
	r := newRules()
	assert.Empty(t, r.IDValidate("64b7f0c2a1b2c3d4e5f60718"))
	for _, bad := range []string{"", "123", "64b7f0c2a1b2c3d4e5f6071z", "64b7f0c2a1b2c3d4e5f607180"} {
		assert.Equal(t, map[string]string{"id": "a valid id is required"}, fields(r.IDValidate(bad)), bad)
	}
}

func TestRules_FixtureValidate_ErrorOrder(t *testing.T) {
	ferrs := newRules().FixtureValidate(fixtureInput("bad", hexID(2), "32-13-2050", "25:99"))
	got := make([]string, 0, len(ferrs))
	for _, fe := range ferrs {
		got = append(got, fe.Field)
	}
	assert.Equal(t, []string{"home", "matchday", "matchtime"}, got)
}

func TestRules_FixtureValidate_SameTeamIgnoresHexCase(t *testing.T) {
	r := newRules()
	in := fixtureInput("64B7F0C2A1B2C3D4E5F60718", "64b7f0c2a1b2c3d4e5f60718", "20-12-2030", "10:30")
	assert.Equal(t, map[string]string{"teams": "home and away teams cannot be the same"}, fields(r.FixtureValidate(in)))
}
