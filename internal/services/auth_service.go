package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
)

var (
	ErrBadCreds       = errors.New("invalid username or password")
	ErrUsernameTaken  = errors.New("Username already exists")
	ErrBadRole        = errors.New("invalid role")
	ErrUserNotFound   = errors.New("User not found")
	ErrAdminProtected = errors.New("Admin user cannot be deleted")
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthService struct {
	Users  *repos.UserRepo
	Secret string
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: secret}
}

func (s *AuthService) Register(fullName, username, role, password string) error {
	if !domain.ValidRole(role) {
		return ErrBadRole
	}
	if _, err := s.Users.ByUsername(username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	return s.Users.Create(domain.User{
		ID:       uuid.NewString(),
		FullName: fullName,
		Username: username,
		Role:     role,
		Hash:     string(hash),
	})
}

// Login checks the bcrypt hash only; there is no plain-text comparison path.
func (s *AuthService) Login(username, password string) (*domain.User, TokenPair, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, TokenPair{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, TokenPair{}, ErrBadCreds
	}
	pair, err := s.issue(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) issue(u *domain.User) (TokenPair, error) {
	access, err := s.sign(u, 24*time.Hour)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(u, 7*24*time.Hour)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(u *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
}

// Parse validates a token string and returns its claims.
func (s *AuthService) Parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(s.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

// ChangePassword rotates an account's hash after verifying the old password.
func (s *AuthService) ChangePassword(username, oldPassword, newPassword string) error {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(oldPassword)) != nil {
		return ErrBadCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(u.Username, string(hash))
}

// DeleteUser removes a staff account. Admin accounts are protected.
func (s *AuthService) DeleteUser(username string) error {
	u, err := s.Users.ByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if u.Role == domain.RoleAdmin {
		return ErrAdminProtected
	}
	return s.Users.Delete(u.Username)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := s.Parse(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	u, err := s.Users.ByUsername(claims.Username)
	if err != nil {
		return TokenPair{}, ErrBadCreds
	}
	return s.issue(u)
}

// ListUsers returns every staff account, for the admin roster view.
func (s *AuthService) ListUsers() ([]domain.User, error) {
	return s.Users.List()
}

// CurrentUser loads the account behind a parsed token.
func (s *AuthService) CurrentUser(claims *Claims) (*domain.User, error) {
	return s.Users.ByUsername(claims.Username)
}
