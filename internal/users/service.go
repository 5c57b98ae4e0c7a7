package users

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Provisioner seeds default grants for a newly created user.
type Provisioner interface {
	ProvisionDefaults(ctx context.Context, userID int64, roleName string) int
}

// Service wraps user account business rules.
type Service struct {
	repo        RepositoryPort
	provisioner Provisioner
	logger      *slog.Logger
}

// NewService constructs a new Service. The provisioner may be nil.
func NewService(repo RepositoryPort, provisioner Provisioner, logger *slog.Logger) *Service {
	return &Service{repo: repo, provisioner: provisioner, logger: logger}
}

// Authenticate validates username/password credentials. All failure causes
// collapse into shared.ErrInvalidCredentials so callers cannot probe which
// usernames exist.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// CreateInput carries the fields for a new user account.
type CreateInput struct {
	Username    string
	Password    string
	DisplayName string
	RoleLabel   string
	IsAdmin     bool
}

// Create hashes the password, persists the account, and provisions the role's
// default grants when a role label is supplied.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		RoleLabel:    strings.TrimSpace(in.RoleLabel),
		IsAdmin:      in.IsAdmin,
		IsActive:     true,
	}
	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	if s.provisioner != nil && user.RoleLabel != "" {
		n := s.provisioner.ProvisionDefaults(ctx, id, user.RoleLabel)
		if s.logger != nil {
			s.logger.Info("provisioned role defaults",
				slog.Int64("user_id", id),
				slog.String("role", user.RoleLabel),
				slog.Int("granted", n))
		}
	}
	return user, nil
}

// FindByID fetches a user by ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// SetActive toggles the active flag for a user.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
