package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"chargenet/internal/apperr"
	"chargenet/internal/models"
)

// UserDirectory defines the storage contract used for auth flows.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	CreateWithVehicle(ctx context.Context, user *models.User, vehicle *models.Vehicle) error
}

// TokenRevoker records revoked token ids until their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService implements passwordless signup and login. Identity is the
// email address; possession of the issued token is the session credential.
type AuthService struct {
	users   UserDirectory
	tokens  *TokenService
	revoker TokenRevoker
	logger  *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(users UserDirectory, tokens *TokenService, revoker TokenRevoker, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
		logger:  logger,
	}
}

// SignupVehicle is the optional first vehicle registered with an account.
type SignupVehicle struct {
	Model              string
	VehicleType        string
	BatteryCapacityKWh float64
}

// SignupInput carries the new account's profile fields.
type SignupInput struct {
	Name        string
	Email       string
	Phone       string
	Street      string
	City        string
	PinCode     string
	DateOfBirth *time.Time
	Vehicle     *SignupVehicle
}

// Signup creates the user (and optional first vehicle) and signs them in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (string, *models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" {
		return "", nil, apperr.New(apperr.KindValidation, "name and email are required")
	}

	user := &models.User{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       strings.TrimSpace(in.Phone),
		Street:      in.Street,
		City:        in.City,
		PinCode:     in.PinCode,
		DateOfBirth: in.DateOfBirth,
	}

	var vehicle *models.Vehicle
	if in.Vehicle != nil && strings.TrimSpace(in.Vehicle.Model) != "" {
		vehicle = &models.Vehicle{
			Model:              strings.TrimSpace(in.Vehicle.Model),
			VehicleType:        in.Vehicle.VehicleType,
			BatteryCapacityKWh: in.Vehicle.BatteryCapacityKWh,
		}
	}

	if err := s.users.CreateWithVehicle(ctx, user, vehicle); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user signed up",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.Bool("with_vehicle", vehicle != nil),
	)
	return token, user, nil
}

// Login signs in an existing user by email. Unknown emails report not-found
// and never create a record.
func (s *AuthService) Login(ctx context.Context, email string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil, apperr.New(apperr.KindValidation, "email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return token, user, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to revoke token", err)
	}
	s.logger.Info("user logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// Profile returns the signed-in user's row.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
