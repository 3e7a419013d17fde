package service

import (
	"strings"
	"time"

	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/models"
	"github.com/mealweek/mealweek-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

// UserService owns account creation and authentication. The user ID it
// issues inside tokens is the identity every planner and recipe call takes
// explicitly; nothing downstream reads identity from ambient state.
type UserService struct {
	Cfg  *config.Config
	Repo repository.UserRepo
}

// NewUserService is the constructor function for initializing a new UserService.
func NewUserService(cfg *config.Config, repo repository.UserRepo) *UserService {
	return &UserService{Cfg: cfg, Repo: repo}
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateUser validates and registers a new account.
func (s *UserService) CreateUser(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		return nil, NewValidationError("username must be between 3 and 30 characters")
	}
	if goaway.IsProfane(username) {
		return nil, NewValidationError("username contains inappropriate language")
	}
	if email != "" && !govalidator.IsEmail(email) {
		return nil, NewValidationError("invalid email address")
	}
	if len(password) < 8 {
		return nil, NewValidationError("password must be at least 8 characters")
	}

	exists, err := s.Repo.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewValidationError("username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Auth:     &models.UserAuth{HashedPassword: string(hashed)},
	}
	return s.Repo.CreateUser(user)
}

// LoginUser verifies credentials and returns a token pair.
func (s *UserService) LoginUser(username, password string) (*models.User, *TokenPair, error) {
	user, err := s.Repo.GetUserAuthByUsername(strings.TrimSpace(username))
	if err != nil {
		if _, ok := err.(repository.NotFoundError); ok {
			return nil, nil, NewValidationError("invalid username or password")
		}
		return nil, nil, err
	}

	if user.Auth == nil ||
		bcrypt.CompareHashAndPassword([]byte(user.Auth.HashedPassword), []byte(password)) != nil {
		return nil, nil, NewValidationError("invalid username or password")
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	user.Auth = nil
	return user, tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *UserService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.Cfg.EnvVars.JwtSecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, NewValidationError("invalid or expired refresh token")
	}
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "refresh" {
		return nil, NewValidationError("invalid token type")
	}
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, NewValidationError("invalid user_id in token")
	}
	return s.issueTokens(uint(idFloat))
}

// issueTokens signs a fresh access/refresh pair for the user.
func (s *UserService) issueTokens(userID uint) (*TokenPair, error) {
	access, err := s.signToken(userID, "access", accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(userID, "refresh", refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Cfg.EnvVars.JwtSecretKey))
}

// GetUserByID returns a user by ID.
func (s *UserService) GetUserByID(userID uint) (*models.User, error) {
	return s.Repo.GetUserByID(userID)
}
