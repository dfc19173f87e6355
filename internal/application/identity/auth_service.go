package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inmogest/backend/internal/domain/identity"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	// ErrAccountLocked is returned while a lockout window is active
	ErrAccountLocked = shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked after repeated failures")
	// ErrAccountDeactivated is returned for a deactivated account
	ErrAccountDeactivated = shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
)

// AuthServiceConfig tunes the login lockout policy
type AuthServiceConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultAuthServiceConfig returns the standard lockout policy
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService authenticates back-office users and issues access tokens
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		config:     config,
		logger:     logger,
	}
}

// Login verifies the credentials and returns a signed access token.
// Failed attempts are counted per account and trip a temporary lock
// once MaxLoginAttempts is reached.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Info("login rejected for unknown username",
				zap.String("username", req.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsLocked() {
		s.logger.Warn("login rejected for locked account",
			zap.String("username", user.Username),
			zap.Timep("locked_until", user.LockedUntil))
		return nil, ErrAccountLocked
	}
	if !user.Active {
		s.logger.Warn("login rejected for deactivated account",
			zap.String("username", user.Username))
		return nil, ErrAccountDeactivated
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if saveErr := s.userRepo.Save(ctx, user); saveErr != nil {
			s.logger.Error("failed to persist login failure",
				zap.String("username", user.Username),
				zap.Error(saveErr))
		}
		if locked {
			s.logger.Warn("account locked after repeated login failures",
				zap.String("username", user.Username),
				zap.Duration("lock_duration", s.config.LockDuration))
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to persist successful login",
			zap.String("username", user.Username),
			zap.Error(err))
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()))

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// ChangePassword verifies the current password and replaces it
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return ErrInvalidCredentials
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("username", user.Username))
	return nil
}

// CreateUser registers a new back-office account
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if existing, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Password, req.DisplayName, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		user.SetEmail(req.Email)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}
