package service

import (
	"context"
	"errors"

	authservice "github.com/migfernandes01/places-share-API/internal/auth/service"
	"github.com/migfernandes01/places-share-API/internal/common/clock"
	commoncrypto "github.com/migfernandes01/places-share-API/internal/common/crypto"
	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	"github.com/migfernandes01/places-share-API/internal/user/domain"
	userrepo "github.com/migfernandes01/places-share-API/internal/user/repository"
)

type UserService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      *authservice.TokenIssuer
	clock       clock.Clock
	log         *logger.Logger
}

func NewUserService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	tokens *authservice.TokenIssuer,
	clock clock.Clock,
	log *logger.Logger,
) *UserService {
	return &UserService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		tokens:      tokens,
		clock:       clock,
		log:         log,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is what both signup and login hand back to the client.
type AuthResult struct {
	UserID string
	Email  string
	Token  string
}

func (s *UserService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	_, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_email_exists",
		}).Warn("signup failed: email already exists")
		return AuthResult{}, commonerrors.ErrEmailTaken
	}
	if !errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_lookup_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, ErrSignupFailed.WithCause(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return AuthResult{}, ErrSignupFailed.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return AuthResult{}, ErrSignupFailed.WithCause(err)
	}

	user := domain.User{
		ID:           domain.ID(id),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Image:        input.Image,
		PlaceIDs:     []string{},
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index closes the race between the lookup above and
		// this insert.
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			return AuthResult{}, commonerrors.ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, ErrSignupFailed.WithCause(err)
	}

	token, err := s.tokens.Issue(string(user.ID), user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_token_failed",
		}).Errorf("signup failed: token issue error: %v", err)
		return AuthResult{}, ErrSignupFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signup_success",
	}).Info("signup success")

	return AuthResult{
		UserID: string(user.ID),
		Email:  user.Email,
		Token:  token,
	}, nil
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_unknown_email",
			}).Warn("login failed: unknown email")
			return AuthResult{}, ErrUnknownEmail
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_lookup_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, ErrLoginFailed.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_wrong_password",
		}).Warn("login failed: wrong password")
		return AuthResult{}, ErrWrongPassword
	}

	token, err := s.tokens.Issue(string(user.ID), user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_token_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, ErrLoginFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return AuthResult{
		UserID: string(user.ID),
		Email:  user.Email,
		Token:  token,
	}, nil
}

// ListUsers returns every user; password hashes are dropped at the HTTP layer.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_users_failed",
		}).Errorf("fetching users failed: %v", err)
		return nil, ErrFetchUsersFailed.WithCause(err)
	}
	return users, nil
}
