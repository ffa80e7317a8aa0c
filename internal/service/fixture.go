package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/repository"
	"github.com/rs/zerolog"
)

type fixtureService struct {
	fixtures repository.FixtureRepository
	teams    repository.TeamRepository
	tx       repository.TxManager
	rules    *Rules
	log      zerolog.Logger
}

func NewFixtureService(fixtures repository.FixtureRepository, teams repository.TeamRepository, tx repository.TxManager, rules *Rules, logger zerolog.Logger) FixtureService {
	l := logger.With().Str("module", "service").Str("component", "fixture").Logger()
	return &fixtureService{fixtures: fixtures, teams: teams, tx: tx, rules: rules, log: l}
}

var (
	errFixtureNotFound = newError(KindNotFound, "no fixture found", repository.ErrNotFound)
	errFixtureExists   = newError(KindConflict, "this fixture already exists", repository.ErrAlreadyExists)
	errFixtureTeamGone = newError(KindConflict, "team does not exist", repository.ErrConflict)
)

func (s *fixtureService) CreateFixture(ctx context.Context, actor model.Identity, in FixtureInput) (model.Fixture, error) {
	start := time.Now()
	if err := requireAdmin(actor); err != nil {
		return model.Fixture{}, err
	}
	if ferrs := s.rules.FixtureValidate(in); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("fixture validation failed (structure)")
		return model.Fixture{}, NewInvalidInputError(ferrs)
	}
	fx := fixtureFromInput(in)
	fx.AdminID = actor.ID

	var out model.Fixture
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureTeamsExist(ctx, fx); err != nil {
			return err
		}
		if err := s.ensurePairFree(ctx, fx.Home.ID, fx.Away.ID, ""); err != nil {
			return err
		}
		created, err := s.fixtures.Create(ctx, fx)
		out = created
		return err
	})
	if err != nil {
		err = fixtureWriteError(err)
		s.log.Error().Err(err).Str("home_id", fx.Home.ID).Str("away_id", fx.Away.ID).Msg("create fixture failed")
		return model.Fixture{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("fixture_id", out.ID).Msg("fixture created")
	return out, nil
}

// UpdateFixture does not reject past matchdays, so already played fixtures stay editable.
func (s *fixtureService) UpdateFixture(ctx context.Context, actor model.Identity, id string, in FixtureInput) (model.Fixture, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Fixture{}, err
	}
	if ferrs := append(s.rules.IDValidate(id), s.rules.FixtureUpdateValidate(in)...); len(ferrs) > 0 {
		return model.Fixture{}, NewInvalidInputError(ferrs)
	}
	fx := fixtureFromInput(in)
	fx.ID = id

	var out model.Fixture
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureTeamsExist(ctx, fx); err != nil {
			return err
		}
		if err := s.authorize(ctx, actor, id); err != nil {
			return err
		}
		if err := s.ensurePairFree(ctx, fx.Home.ID, fx.Away.ID, id); err != nil {
			return err
		}
		updated, err := s.fixtures.Update(ctx, fx)
		out = updated
		return err
	})
	if err != nil {
		err = fixtureWriteError(err)
		s.log.Error().Err(err).Str("fixture_id", id).Msg("update fixture failed")
		return model.Fixture{}, err
	}
	return out, nil
}

func (s *fixtureService) DeleteFixture(ctx context.Context, actor model.Identity, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if ferrs := s.rules.IDValidate(id); len(ferrs) > 0 {
		return NewInvalidInputError(ferrs)
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.authorize(ctx, actor, id); err != nil {
			return err
		}
		return s.fixtures.Delete(ctx, id)
	})
	if err != nil {
		err = fixtureWriteError(err)
		s.log.Error().Err(err).Str("fixture_id", id).Msg("delete fixture failed")
		return err
	}
	s.log.Info().Str("fixture_id", id).Msg("fixture deleted")
	return nil
}

func (s *fixtureService) GetFixture(ctx context.Context, id string) (model.Fixture, error) {
	fx, err := s.AdminGetFixture(ctx, id)
	if err != nil {
		return model.Fixture{}, err
	}
	return fx.Public(), nil
}

// AdminGetFixture is the privileged read: it keeps the owner reference.
func (s *fixtureService) AdminGetFixture(ctx context.Context, id string) (model.Fixture, error) {
	if ferrs := s.rules.IDValidate(id); len(ferrs) > 0 {
		return model.Fixture{}, NewInvalidInputError(ferrs)
	}
	fx, err := s.fixtures.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Fixture{}, errFixtureNotFound
	}
	return fx, err
}

func (s *fixtureService) ListFixtures(ctx context.Context) ([]model.Fixture, error) {
	fixtures, err := s.fixtures.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list fixtures failed")
		return nil, err
	}
	return publicFixtures(fixtures), nil
}

func (s *fixtureService) authorize(ctx context.Context, actor model.Identity, id string) error {
	fx, err := s.AdminGetFixture(ctx, id)
	if err != nil {
		return err
	}
	if fx.AdminID != actor.ID {
		return errNotOwner
	}
	return nil
}

// ensureTeamsExist reports unknown team ids as field errors rather than FK failures.
func (s *fixtureService) ensureTeamsExist(ctx context.Context, fx model.Fixture) error {
	var ferrs []FieldError
	for _, ref := range []struct{ field, id string }{{"home", fx.Home.ID}, {"away", fx.Away.ID}} {
		ok, err := s.teams.Exists(ctx, ref.id)
		if err != nil {
			return err
		}
		if !ok {
			ferrs = append(ferrs, FieldError{Field: ref.field, Message: "team does not exist"})
		}
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("fixture validation failed (existence)")
		return err
	}
	return nil
}

func (s *fixtureService) ensurePairFree(ctx context.Context, homeID, awayID, self string) error {
	existing, err := s.fixtures.GetByTeams(ctx, homeID, awayID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return errFixtureExists
	default:
		return nil
	}
}

func fixtureWriteError(err error) error {
	var de *Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, repository.ErrAlreadyExists):
		return errFixtureExists
	case errors.Is(err, repository.ErrConflict):
		// a team was deleted between the existence check and the write
		return errFixtureTeamGone
	case errors.Is(err, repository.ErrNotFound):
		return errFixtureNotFound
	default:
		return err
	}
}

func fixtureFromInput(in FixtureInput) model.Fixture {
	return model.Fixture{
		Home:      model.TeamRef{ID: strings.ToLower(*in.Home)},
		Away:      model.TeamRef{ID: strings.ToLower(*in.Away)},
		Matchday:  *in.Matchday,
		Matchtime: *in.Matchtime,
	}
}

func publicFixtures(fixtures []model.Fixture) []model.Fixture {
	out := make([]model.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, f.Public())
	}
	return out
}
