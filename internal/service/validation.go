package service

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/maxviazov/league-service/internal/model"
)

// Request inputs. A nil pointer means the field was not sent.
type (
	RegisterInput struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	LoginInput struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	TeamInput struct {
		Name *string `json:"name"`
	}
	FixtureInput struct {
		Home      *string `json:"home"`
		Away      *string `json:"away"`
		Matchday  *string `json:"matchday"`
		Matchtime *string `json:"matchtime"`
	}
)

const (
	msgName          = "name is required"
	msgEmail         = "a valid email is required"
	msgPassword      = "password is required, atleast 6 characters"
	msgTeamName      = "team name is required"
	msgTeamSearch    = "a valid team name is required, atleast 3 characters"
	msgHomeID        = "a valid home team id is required"
	msgAwayID        = "a valid away team id is required"
	msgHomeSearch    = "a valid home team name is required, atleast 3 characters"
	msgAwaySearch    = "a valid away team name is required, atleast 3 characters"
	msgMatchday      = "matchday must be a valid date in the format dd-mm-yyyy"
	msgMatchdayPast  = "matchday cannot be in the past"
	msgMatchtime     = "matchtime must be a valid time in the format HH:MM"
	msgSameTeams     = "home and away teams cannot be the same"
	msgID            = "a valid id is required"
	minPasswordLen   = 6
	minSearchNameLen = 3
	matchdayLayout   = "02-01-2006"
)

var (
	matchdayRe  = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])-(0[1-9]|1[0-2])-(19|20)\d{2}$`)
	matchtimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Rules holds the request validation rules. Each rule runs every check and
// returns at most one FieldError per field, in field order; nil means valid.
type Rules struct {
	clock clockwork.Clock
	v     *validator.Validate
}

func NewRules(clock clockwork.Clock) *Rules {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Rules{clock: clock, v: validator.New()}
}

func (r *Rules) RegisterValidate(in RegisterInput) []FieldError {
	var ferrs []FieldError
	if !present(in.Name) {
		ferrs = append(ferrs, FieldError{Field: "name", Message: msgName})
	}
	return append(ferrs, r.credentials(in.Email, in.Password)...)
}

func (r *Rules) LoginValidate(in LoginInput) []FieldError {
	return r.credentials(in.Email, in.Password)
}

func (r *Rules) credentials(email, password *string) []FieldError {
	var ferrs []FieldError
	if !present(email) || r.v.Var(strings.TrimSpace(*email), "email") != nil {
		ferrs = append(ferrs, FieldError{Field: "email", Message: msgEmail})
	}
	if password == nil || utf8.RuneCountInString(*password) < minPasswordLen {
		ferrs = append(ferrs, FieldError{Field: "password", Message: msgPassword})
	}
	return ferrs
}

func (r *Rules) TeamValidate(in TeamInput) []FieldError {
	if !present(in.Name) {
		return []FieldError{{Field: "name", Message: msgTeamName}}
	}
	return nil
}

// FixtureValidate is the create rule: matchday must be today or later.
func (r *Rules) FixtureValidate(in FixtureInput) []FieldError {
	return r.fixture(in, true)
}

// FixtureUpdateValidate is FixtureValidate without the past-date check.
func (r *Rules) FixtureUpdateValidate(in FixtureInput) []FieldError {
	return r.fixture(in, false)
}

func (r *Rules) fixture(in FixtureInput, rejectPast bool) []FieldError {
	var ferrs []FieldError
	home, away := strings.ToLower(deref(in.Home)), strings.ToLower(deref(in.Away))
	homeOK := r.IsID(home)
	if !homeOK {
		ferrs = append(ferrs, FieldError{Field: "home", Message: msgHomeID})
	}
	awayOK := r.IsID(away)
	if !awayOK {
		ferrs = append(ferrs, FieldError{Field: "away", Message: msgAwayID})
	}

	// an absent matchday fails the format check, there is no separate "required" message
	if day, ok := parseMatchday(deref(in.Matchday)); !ok {
		ferrs = append(ferrs, FieldError{Field: "matchday", Message: msgMatchday})
	} else if rejectPast && day.Before(r.today(day.Location())) {
		ferrs = append(ferrs, FieldError{Field: "matchday", Message: msgMatchdayPast})
	}

	if !matchtimeRe.MatchString(deref(in.Matchtime)) {
		ferrs = append(ferrs, FieldError{Field: "matchtime", Message: msgMatchtime})
	}
	if homeOK && awayOK && home == away {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: msgSameTeams})
	}
	return ferrs
}

// TeamSearchValidate accepts an absent name; a present one needs 3+ characters.
func (r *Rules) TeamSearchValidate(name *string) []FieldError {
	if name != nil && !searchName(*name) {
		return []FieldError{{Field: "name", Message: msgTeamSearch}}
	}
	return nil
}

// FixtureSearchValidate checks only the fields that are present.
func (r *Rules) FixtureSearchValidate(q model.SearchQuery) []FieldError {
	var ferrs []FieldError
	if q.Home != nil && !searchName(*q.Home) {
		ferrs = append(ferrs, FieldError{Field: "home", Message: msgHomeSearch})
	}
	if q.Away != nil && !searchName(*q.Away) {
		ferrs = append(ferrs, FieldError{Field: "away", Message: msgAwaySearch})
	}
	if q.Matchday != nil {
		if _, ok := parseMatchday(*q.Matchday); !ok {
			ferrs = append(ferrs, FieldError{Field: "matchday", Message: msgMatchday})
		}
	}
	if q.Matchtime != nil && !matchtimeRe.MatchString(*q.Matchtime) {
		ferrs = append(ferrs, FieldError{Field: "matchtime", Message: msgMatchtime})
	}
	return ferrs
}

// IDValidate checks a path id.
func (r *Rules) IDValidate(id string) []FieldError {
	if !r.IsID(id) {
		return []FieldError{{Field: "id", Message: msgID}}
	}
	return nil
}

// IsID reports whether s is a 24 hex character identifier.
func (r *Rules) IsID(s string) bool {
	return s != "" && r.v.Var(s, "mongodb") == nil
}

func (r *Rules) today(loc *time.Location) time.Time {
	now := r.clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// parseMatchday applies the dd-mm-yyyy pattern and rejects impossible dates like 31-02.
func parseMatchday(s string) (time.Time, bool) {
	if !matchdayRe.MatchString(s) {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(matchdayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func searchName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= minSearchNameLen
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
