package identity

import (
	"context"
	"errors"

	"github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/packsource/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates by phone and role and returns a token pair.
// Accounts that never stored a password hash authenticate by lookup alone.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	s.logger.Info("Login attempt", zap.String("phone", req.Phone), zap.String("role", req.Role))

	user, err := s.userRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown phone", zap.String("phone", req.Phone))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Phone number or role does not match")
		}
		return nil, err
	}

	if string(user.Role) != req.Role {
		s.logger.Warn("Login with mismatched role",
			zap.String("phone", req.Phone),
			zap.String("requested_role", req.Role))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Phone number or role does not match")
	}

	if !user.CanLogin() {
		s.logger.Warn("Login for disabled account", zap.String("phone", req.Phone))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("phone", req.Phone))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Phone number or password does not match")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Login still succeeds, only the timestamp is lost
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// ResetPassword records a reset intent and reports delivery channels.
// No credentials are issued here; an operator completes the reset.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error) {
	user, err := s.userRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "No account with this phone number")
		}
		return nil, err
	}

	channels := []string{"sms"}
	if user.Email != "" {
		channels = append(channels, "email")
	}

	s.logger.Info("Password reset requested",
		zap.String("user_id", user.ID.String()),
		zap.Strings("channels", channels))

	return &ResetPasswordResponse{Channels: channels}, nil
}

// Refresh exchanges a valid refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	tokens, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid or expired refresh token")
	}
	return tokens, nil
}
