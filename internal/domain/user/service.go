package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/receita/receita/internal/platform/auth"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// Callers cannot tell the two cases apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	repo   Repository
	issuer *auth.TokenIssuer
	logger zerolog.Logger
}

func NewService(repo Repository, issuer *auth.TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, logger: logger}
}

// Login verifies the credentials and returns a signed token with the user.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u.ID, u.Email, u.Name, u.CRM)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResponse{Token: token, User: u}, nil
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, p Patch) (*User, error) {
	if p.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*p.Email))
		if normalized == "" {
			return nil, fmt.Errorf("email cannot be empty")
		}
		p.Email = &normalized
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if p.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.UpdateProfile(ctx, id, p)
}

// SeedAdmin ensures the configured doctor account exists. Existing accounts
// are left untouched so a changed ADMIN_PASSWORD does not rotate credentials.
func (s *Service) SeedAdmin(ctx context.Context, email, password, name, crm string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Debug().Str("email", email).Msg("admin account already present")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	u := &User{Email: email, Password: string(hash), Name: name, CRM: crm}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			// Lost a race with a concurrent seeder, account exists.
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("admin account created")
	return nil
}
