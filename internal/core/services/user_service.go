package services

import (
	"context"
	"fmt"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/araliya-mfi/loan_origination_app/internal/utils"
	"github.com/google/uuid"
)

// userService manages staff users and doubles as the CapabilityChecker backed
// by staff roles.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *userService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !apperrors.IsNotFound(err) {
		s.LogError(ctx, err, "failed to check username availability", "username", req.Username)
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("username '%s' is already taken", req.Username))
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         domain.StaffRole(req.Role),
		BranchID:     req.BranchID,
		AuditFields:  domain.NewAuditFields("system", now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "failed to save user", "username", req.Username)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	s.LogInfo(ctx, "staff user created", "userID", user.UserID, "role", user.Role)
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
		}
		s.LogError(ctx, err, "failed to find user", "userID", userID)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		s.LogError(ctx, err, "failed to find user by username")
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role := domain.StaffRole(*req.Role)
		switch role {
		case domain.RoleFieldOfficer, domain.RoleBranchManager, domain.RoleAdministrator:
			user.Role = role
		default:
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown role '%s'", *req.Role))
		}
	}
	user.Touch(updaterUserID, time.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "failed to update user", "userID", userID)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, deleterUserID string) error {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), deleterUserID); err != nil {
		s.LogError(ctx, err, "failed to deactivate user", "userID", userID)
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	s.LogInfo(ctx, "staff user deactivated", "userID", userID, "by", deleterUserID)
	return nil
}

func (s *userService) UpdateRefreshTokenDetails(ctx context.Context, userID string, tokenHash string, expiryTime *time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, expiryTime); err != nil {
		s.LogError(ctx, err, "failed to store refresh token details", "userID", userID)
		return fmt.Errorf("failed to store refresh token details: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshTokenDetails(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		s.LogError(ctx, err, "failed to clear refresh token details", "userID", userID)
		return fmt.Errorf("failed to clear refresh token details: %w", err)
	}
	return nil
}

// HasPermission implements the CapabilityChecker backed by staff roles. An
// unknown or deactivated user simply has no capabilities.
func (s *userService) HasPermission(ctx context.Context, userID, capability string) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve user capabilities: %w", err)
	}
	if user.DeletedAt != nil {
		return false, nil
	}
	return user.HasCapability(capability), nil
}
