package user

import (
	"context"
	"fmt"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// Service handles account administration. Registration and login live
// in the auth service; this one covers the admin-facing user directory
// and password changes.
type Service struct {
	user.UserRepository
	contract.ContractRepository
}

func NewService(userRepository user.UserRepository, contractRepository contract.ContractRepository) *Service {
	return &Service{
		UserRepository:     userRepository,
		ContractRepository: contractRepository,
	}
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.UserRepository.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (user.User, error) {
	return s.UserRepository.GetByID(ctx, id)
}

// GetWithContracts returns the user together with their contracts, the
// shape the admin detail page consumes.
func (s *Service) GetWithContracts(ctx context.Context, id string) (user.User, []contract.Contract, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.User{}, nil, err
	}

	contracts, err := s.ContractRepository.ListByEmployee(ctx, id)
	if err != nil {
		return user.User{}, nil, fmt.Errorf("failed to list contracts for user %s: %w", id, err)
	}
	return u, contracts, nil
}

func (s *Service) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.User{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	return s.UserRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &passwordHash,
		Role:         role,
	})
}

func (s *Service) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	current, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Email != nil && *req.Email != current.Email {
		exists, err := s.UserRepository.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return user.User{}, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.User{}, user.ErrUserEmailExists
		}
		current.Email = *req.Email
	}
	if req.Role != nil {
		current.Role = user.Role(*req.Role)
	}

	return s.UserRepository.Update(ctx, current)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.UserRepository.Delete(ctx, id)
}

// ChangePassword sets a new password for the target user. A user
// changing their own password must supply the current one; an admin
// resetting someone else's does not.
func (s *Service) ChangePassword(ctx context.Context, actorID string, actorRole user.Role, req user.ChangePasswordRequest) error {
	if actorID != req.UserID && actorRole != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	target, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	if actorID == req.UserID {
		if target.PasswordHash == nil {
			return user.ErrPasswordIncorrect
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*target.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return user.ErrPasswordIncorrect
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.UserRepository.UpdatePasswordHash(ctx, target.ID, string(hash))
}
