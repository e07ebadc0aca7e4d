// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/cantina-core/internal/core"
)

const tempPasswordLength = 12

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("create user: %w: %v", core.ErrValidation, err)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CPF:           req.CPF,
		Login:         req.Login,
		PasswordHash:  passwordHash,
		AdmissionDate: req.AdmissionDate,
		Role:          req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (bool, error) {
	if req.isEmpty() {
		return false, nil
	}

	if err := s.validate.Struct(req); err != nil {
		return false, fmt.Errorf("update user: %w: %v", core.ErrValidation, err)
	}

	params := UpdateParams{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CPF:           req.CPF,
		Login:         req.Login,
		AdmissionDate: req.AdmissionDate,
		Role:          req.Role,
		Active:        req.Active,
	}

	if req.Password != nil {
		passwordHash, err := core.HashPassword(*req.Password)
		if err != nil {
			return false, fmt.Errorf("hash password: %w", err)
		}
		params.PasswordHash = &passwordHash
	}

	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByLogin(
	ctx context.Context,
	login string,
) (*User, error) {
	return s.repo.GetByLogin(ctx, login)
}

func (s *Service) List(
	ctx context.Context,
	includeInactive bool,
) ([]User, error) {
	return s.repo.List(ctx, includeInactive)
}

// ResetPassword stores a freshly generated temporary password for the user
// and returns its plaintext exactly once, for the operator to hand over.
func (s *Service) ResetPassword(
	ctx context.Context,
	id int64,
) (string, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("reset password: %w", core.ErrNotFound)
	}

	temp := strings.ReplaceAll(uuid.NewString(), "-", "")[:tempPasswordLength]

	passwordHash, err := core.HashPassword(temp)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	changed, err := s.repo.Update(ctx, id, UpdateParams{
		PasswordHash: &passwordHash,
	})
	if err != nil {
		return "", err
	}
	if !changed {
		return "", fmt.Errorf("reset password: %w", core.ErrNotFound)
	}

	return temp, nil
}
