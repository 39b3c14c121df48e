package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imaadi07/User-Authentication/internal/domain/entity"
	repo "github.com/imaadi07/User-Authentication/internal/domain/repository"
	"github.com/imaadi07/User-Authentication/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// Service implements the signup/login/profile use-cases over the user
// repository and the token manager.
type Service struct {
	Repo   repo.UserRepository
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, tokens *helpers.TokenManager, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, Tokens: tokens, Logger: logger}
}

// IssuedToken is a signed session token together with its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// Signup creates a user with a bcrypt-hashed password and issues a token.
// The pre-insert existence check mirrors the lookup clients observe; the
// unique constraint on username closes the race between concurrent signups.
func (s *Service) Signup(ctx context.Context, username, password string) (*entity.User, IssuedToken, error) {
	if existing, err := s.Repo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, IssuedToken{}, ErrUserExists
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, IssuedToken{}, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	u := &entity.User{Username: username, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, IssuedToken{}, ErrUserExists
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("create user failed")
		}
		return nil, IssuedToken{}, err
	}

	tok, err := s.issue(u)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	return u, tok, nil
}

// Login verifies the credentials and issues a token. Unknown username and
// wrong password collapse into the same error so responses cannot reveal
// which field was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.User, IssuedToken, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, IssuedToken{}, ErrInvalidCredentials
		}
		return nil, IssuedToken{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, IssuedToken{}, ErrInvalidCredentials
	}
	tok, err := s.issue(u)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	return u, tok, nil
}

// GetProfile re-fetches the user by ID; the token's embedded data is not
// trusted for display.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issue(u *entity.User) (IssuedToken, error) {
	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return IssuedToken{}, err
	}
	return IssuedToken{Token: token, ExpiresAt: exp}, nil
}
