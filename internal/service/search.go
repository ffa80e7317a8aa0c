package service

import (
	"context"
	"strings"

	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
	"github.com/rs/zerolog"
)

// Mask records which optional fixture search fields a query carries.
type Mask uint8

const (
	MaskHome Mask = 1 << iota
	MaskAway
	MaskMatchday
	MaskMatchtime
)

// MaskOf computes the presence mask of q.
func MaskOf(q model.SearchQuery) Mask {
	var m Mask
	if q.Home != nil {
		m |= MaskHome
	}
	if q.Away != nil {
		m |= MaskAway
	}
	if q.Matchday != nil {
		m |= MaskMatchday
	}
	if q.Matchtime != nil {
		m |= MaskMatchtime
	}
	return m
}

// strategies is the dispatch table: one named search per presence mask.
// The empty mask and the full mask have no entry.
var strategies = map[Mask]string{
	MaskHome:                                "home",
	MaskAway:                                "away",
	MaskMatchday:                            "matchday",
	MaskMatchtime:                           "matchtime",
	MaskHome | MaskAway:                     "home+away",
	MaskHome | MaskMatchday:                 "home+matchday",
	MaskHome | MaskMatchtime:                "home+matchtime",
	MaskAway | MaskMatchday:                 "away+matchday",
	MaskAway | MaskMatchtime:                "away+matchtime",
	MaskMatchday | MaskMatchtime:            "matchday+matchtime",
	MaskHome | MaskAway | MaskMatchday:      "home+away+matchday",
	MaskHome | MaskAway | MaskMatchtime:     "home+away+matchtime",
	MaskHome | MaskMatchday | MaskMatchtime: "home+matchday+matchtime",
	MaskAway | MaskMatchday | MaskMatchtime: "away+matchday+matchtime",
}

// Strategy returns the search selected for a mask.
func Strategy(m Mask) (string, bool) {
	name, ok := strategies[m]
	return name, ok
}

type searchService struct {
	teams    repository.TeamRepository
	fixtures repository.FixtureRepository
	rules    *Rules
	log      zerolog.Logger
}

func NewSearchService(teams repository.TeamRepository, fixtures repository.FixtureRepository, rules *Rules, logger zerolog.Logger) SearchService {
	l := logger.With().Str("module", "service").Str("component", "search").Logger()
	return &searchService{teams: teams, fixtures: fixtures, rules: rules, log: l}
}

// SearchTeams matches a case-insensitive name fragment; a nil name lists every team.
func (s *searchService) SearchTeams(ctx context.Context, name *string) ([]model.Team, error) {
	if ferrs := s.rules.TeamSearchValidate(name); len(ferrs) > 0 {
		return nil, NewInvalidInputError(ferrs)
	}
	teams, err := s.teams.SearchByName(ctx, strings.TrimSpace(deref(name)))
	if err != nil {
		s.log.Error().Err(err).Msg("team search failed")
		return nil, err
	}
	return publicTeams(teams), nil
}

// SearchFixtures resolves the query's presence mask to a single strategy and runs it.
// Team names expand to every matching team id; matchday and matchtime match exactly.
func (s *searchService) SearchFixtures(ctx context.Context, q model.SearchQuery) ([]model.Fixture, error) {
	if ferrs := s.rules.FixtureSearchValidate(q); len(ferrs) > 0 {
		return nil, NewInvalidInputError(ferrs)
	}
	mask := MaskOf(q)
	name, ok := Strategy(mask)
	if !ok {
		s.log.Debug().Uint8("mask", uint8(mask)).Msg("no search strategy for query, returning empty result")
		return []model.Fixture{}, nil
	}
	log := s.log.With().Str("strategy", name).Logger()

	var filter repository.FixtureFilter
	if mask&MaskHome != 0 {
		ids, err := s.teamIDs(ctx, *q.Home)
		if err != nil || len(ids) == 0 {
			return emptyOnMiss(err, log)
		}
		filter.HomeIDs = ids
	}
	if mask&MaskAway != 0 {
		ids, err := s.teamIDs(ctx, *q.Away)
		if err != nil || len(ids) == 0 {
			return emptyOnMiss(err, log)
		}
		filter.AwayIDs = ids
	}
	if mask&MaskMatchday != 0 {
		v := strings.TrimSpace(*q.Matchday)
		filter.Matchday = &v
	}
	if mask&MaskMatchtime != 0 {
		v := strings.TrimSpace(*q.Matchtime)
		filter.Matchtime = &v
	}

	fixtures, err := s.fixtures.Find(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("fixture search failed")
		return nil, err
	}
	log.Debug().Int("results", len(fixtures)).Msg("fixture search done")
	return publicFixtures(fixtures), nil
}

func (s *searchService) teamIDs(ctx context.Context, fragment string) ([]string, error) {
	teams, err := s.teams.SearchByName(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// emptyOnMiss ends a search early: a store error propagates, a team name with no
// matches means no fixture can match either.
func emptyOnMiss(err error, log zerolog.Logger) ([]model.Fixture, error) {
	if err != nil {
		log.Error().Err(err).Msg("team lookup for fixture search failed")
		return nil, err
	}
	return []model.Fixture{}, nil
}
