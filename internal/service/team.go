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

// teamService holds team use-case logic: validation + orchestration, no transport / SQL details.
type teamService struct {
	repo  repository.TeamRepository
	tx    repository.TxManager
	rules *Rules
	log   zerolog.Logger
}

func NewTeamService(repo repository.TeamRepository, tx repository.TxManager, rules *Rules, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{repo: repo, tx: tx, rules: rules, log: l}
}

var (
	errTeamNotFound   = newError(KindNotFound, "no team found", repository.ErrNotFound)
	errTeamExists     = newError(KindConflict, "a team with this name already exists", repository.ErrAlreadyExists)
	errTeamReferenced = newError(KindConflict, "team is still referenced by fixtures", repository.ErrConflict)
)

func (s *teamService) CreateTeam(ctx context.Context, actor model.Identity, in TeamInput) (model.Team, error) {
	start := time.Now()
	if err := requireAdmin(actor); err != nil {
		return model.Team{}, err
	}
	if ferrs := s.rules.TeamValidate(in); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("team validation failed")
		return model.Team{}, NewInvalidInputError(ferrs)
	}
	name := strings.TrimSpace(*in.Name)

	var out model.Team
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureNameFree(ctx, name, ""); err != nil {
			return err
		}
		created, err := s.repo.Create(ctx, model.Team{Name: name, AdminID: actor.ID})
		out = created
		return err
	})
	if err != nil {
		err = teamWriteError(err)
		s.log.Error().Err(err).Str("name", name).Msg("create team failed")
		return model.Team{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("team_id", out.ID).Msg("team created")
	return out, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, actor model.Identity, id string, in TeamInput) (model.Team, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Team{}, err
	}
	if ferrs := append(s.rules.IDValidate(id), s.rules.TeamValidate(in)...); len(ferrs) > 0 {
		return model.Team{}, NewInvalidInputError(ferrs)
	}
	name := strings.TrimSpace(*in.Name)

	var out model.Team
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.authorize(ctx, actor, id); err != nil {
			return err
		}
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return err
		}
		updated, err := s.repo.Update(ctx, model.Team{ID: id, Name: name})
		out = updated
		return err
	})
	if err != nil {
		err = teamWriteError(err)
		s.log.Error().Err(err).Str("team_id", id).Msg("update team failed")
		return model.Team{}, err
	}
	return out, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, actor model.Identity, id string) error {
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
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		err = teamWriteError(err)
		s.log.Error().Err(err).Str("team_id", id).Msg("delete team failed")
		return err
	}
	s.log.Info().Str("team_id", id).Msg("team deleted")
	return nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (model.Team, error) {
	t, err := s.AdminGetTeam(ctx, id)
	if err != nil {
		return model.Team{}, err
	}
	return t.Public(), nil
}

// AdminGetTeam is the privileged read: it keeps the owner reference.
func (s *teamService) AdminGetTeam(ctx context.Context, id string) (model.Team, error) {
	if ferrs := s.rules.IDValidate(id); len(ferrs) > 0 {
		return model.Team{}, NewInvalidInputError(ferrs)
	}
	t, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Team{}, errTeamNotFound
	}
	return t, err
}

func (s *teamService) ListTeams(ctx context.Context) ([]model.Team, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list teams failed")
		return nil, err
	}
	return publicTeams(teams), nil
}

// authorize loads the team and checks the caller owns it.
func (s *teamService) authorize(ctx context.Context, actor model.Identity, id string) error {
	t, err := s.AdminGetTeam(ctx, id)
	if err != nil {
		return err
	}
	if t.AdminID != actor.ID {
		return errNotOwner
	}
	return nil
}

// ensureNameFree fails when another team (id != self) already uses name.
func (s *teamService) ensureNameFree(ctx context.Context, name, self string) error {
	existing, err := s.repo.GetByName(ctx, name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return errTeamExists
	default:
		return nil
	}
}

// teamWriteError maps store-level rejections that slipped past the pre-reads.
func teamWriteError(err error) error {
	var de *Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, repository.ErrAlreadyExists):
		return errTeamExists
	case errors.Is(err, repository.ErrConflict):
		return errTeamReferenced
	case errors.Is(err, repository.ErrNotFound):
		return errTeamNotFound
	default:
		return err
	}
}

func publicTeams(teams []model.Team) []model.Team {
	out := make([]model.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Public())
	}
	return out
}
