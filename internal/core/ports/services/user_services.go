package services

import (
	"context"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
)

// UserReaderSvc defines read operations on staff users
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations on staff users
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeactivateUser(ctx context.Context, userID string, deleterUserID string) error

	// UpdateRefreshTokenDetails stores the hash/expiry of an issued refresh token.
	UpdateRefreshTokenDetails(ctx context.Context, userID string, tokenHash string, expiryTime *time.Time) error
	// ClearRefreshTokenDetails drops the stored refresh token on logout.
	ClearRefreshTokenDetails(ctx context.Context, userID string) error
}

// UserSvcFacade combines user service interfaces. It also serves as the
// CapabilityChecker implementation backed by staff roles.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	CapabilityChecker
}
