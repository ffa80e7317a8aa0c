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

type userService struct {
	users  repository.UserRepository
	tx     repository.TxManager
	rules  *Rules
	hasher PasswordHasher
	tokens TokenIssuer
	log    zerolog.Logger
}

func NewUserService(users repository.UserRepository, tx repository.TxManager, rules *Rules, hasher PasswordHasher, tokens TokenIssuer, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{users: users, tx: tx, rules: rules, hasher: hasher, tokens: tokens, log: l}
}

func (s *userService) RegisterUser(ctx context.Context, in RegisterInput) (model.UserView, error) {
	return s.register(ctx, in, model.RoleUser)
}

func (s *userService) RegisterAdmin(ctx context.Context, in RegisterInput) (model.UserView, error) {
	return s.register(ctx, in, model.RoleAdmin)
}

func (s *userService) register(ctx context.Context, in RegisterInput, role model.Role) (model.UserView, error) {
	start := time.Now()
	if ferrs := s.rules.RegisterValidate(in); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Str("role", string(role)).Msg("register validation failed")
		return model.UserView{}, NewInvalidInputError(ferrs)
	}
	email := normalizeEmail(*in.Email)

	hash, err := s.hasher.Hash(*in.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hashing failed")
		return model.UserView{}, err
	}

	var out model.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return repository.ErrAlreadyExists
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		created, err := s.users.Create(ctx, model.User{
			Name:         strings.TrimSpace(*in.Name),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		})
		out = created
		return err
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		return model.UserView{}, newError(KindConflict, "a user with this email already exists", err)
	}
	if err != nil {
		s.log.Error().Err(err).Str("role", string(role)).Msg("register failed")
		return model.UserView{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("user_id", out.ID).Str("role", string(role)).Msg("account registered")
	return out.View(), nil
}

func (s *userService) Login(ctx context.Context, in LoginInput) (string, error) {
	if ferrs := s.rules.LoginValidate(in); len(ferrs) > 0 {
		return "", NewInvalidInputError(ferrs)
	}
	user, err := s.users.GetByEmail(ctx, normalizeEmail(*in.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", newError(KindNotFound, "no user found with this email", err)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("login lookup failed")
		return "", err
	}
	if !s.hasher.Verify(user.PasswordHash, *in.Password) {
		s.log.Debug().Str("user_id", user.ID).Msg("login rejected: bad password")
		return "", newError(KindUnauthorized, "incorrect password", nil)
	}
	token, err := s.tokens.Issue(model.Identity{ID: user.ID, Role: user.Role})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("token issue failed")
		return "", err
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
