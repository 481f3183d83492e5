package services

import (
	"context"
	"errors"
	"net/http"

	"ecom-backend/models"
	"ecom-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers and authenticates users, issuing JWTs on success.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, *ServiceError)
	Login(ctx context.Context, email, password string) (*models.User, string, *ServiceError)
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError)
}

type authServiceImpl struct {
	users  repository.UserStore
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthService(users repository.UserStore, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account with a bcrypt-hashed password and returns a
// fresh token.
func (s *authServiceImpl) Register(ctx context.Context, name, email, password string) (*models.User, string, *ServiceError) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", &ServiceError{StatusCode: http.StatusConflict, Message: "User already exists"}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.logger.Error("Register: email lookup failed", zap.Error(err))
		return nil, "", internalError("Failed to register user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: password hashing failed", zap.Error(err))
		return nil, "", internalError("Failed to register user")
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", &ServiceError{StatusCode: http.StatusConflict, Message: "User already exists"}
		}
		s.logger.Error("Register: insert failed", zap.Error(err))
		return nil, "", internalError("Failed to register user")
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Register: token generation failed", zap.Error(err))
		return nil, "", internalError("Failed to generate token")
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login verifies the password against the stored hash. A missing account and
// a wrong password produce the same response.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.User, string, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
		}
		s.logger.Error("Login: email lookup failed", zap.Error(err))
		return nil, "", internalError("Failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Login: token generation failed", zap.Error(err))
		return nil, "", internalError("Failed to generate token")
	}

	return user, token, nil
}

func (s *authServiceImpl) Profile(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "User not found"}
		}
		s.logger.Error("Profile: lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch profile")
	}
	return user, nil
}
