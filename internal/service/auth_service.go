package service

import (
	"context"
	"time"

	"backend/internal/config"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username             string `json:"username" binding:"required"`
	Password             string `json:"password" binding:"required,min=6"`
	RegistrationPassword string `json:"registration_password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

// Register creates an account. The endpoint is open but guarded by a shared
// registration password whose bcrypt hash lives in the configuration.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.RegistrationPasswordHash), []byte(req.RegistrationPassword)); err != nil {
		return nil, apperror.NewValidation("invalid registration password")
	}

	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("username %q already exists", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	// Same failure for unknown user and wrong password.
	if user == nil {
		return nil, apperror.NewValidation("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewValidation("invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.JWTSecret())
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: signed}, nil
}
