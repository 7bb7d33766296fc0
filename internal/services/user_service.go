package services

import (
	"context"
	"errors"
	"time"

	"album-backend/internal/models"
	"album-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// Identity is the caller identity decoded from a verified bearer token
type Identity struct {
	UserID int
	Email  string
}

type UserService struct {
	store  UserStore
	secret []byte
}

// NewUserService wires the user store and the token signing secret. The
// secret must come from configuration; there is no default.
func NewUserService(store UserStore, secret string) *UserService {
	return &UserService{store: store, secret: []byte(secret)}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, req.Email, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are reported separately, matching the API contract.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidPassword
	}

	return s.GenerateToken(user.ID, user.Email)
}

// GenerateToken signs a {userId, email} payload with a 1-hour expiry
func (s *UserService) GenerateToken(userID int, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies signature and expiry and decodes the caller
// identity. Expiry is reported distinctly so the gate can answer 401 for an
// expired token and 403 for a bad one.
func (s *UserService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// Numeric claims come back as float64 from JSON
	uid, ok := claims["userId"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)

	return &Identity{UserID: int(uid), Email: email}, nil
}
