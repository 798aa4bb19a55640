package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown users and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is the authenticated identity returned from a login.
type User struct {
	ID       int    `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Service verifies credentials against the store and issues tokens.
type Service struct {
	db         *sql.DB
	issuer     string
	signingKey string
	ttl        time.Duration
}

// NewService creates an auth service.
func NewService(db *sql.DB, issuer, signingKey string, ttl time.Duration) *Service {
	return &Service{db: db, issuer: issuer, signingKey: signingKey, ttl: ttl}
}

// AdminLogin checks an admin username/password and returns a signed token.
func (s *Service) AdminLogin(ctx context.Context, username, password string) (string, User, error) {
	var (
		id   int
		hash string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM admins WHERE username = $1`, username,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", User{}, ErrInvalidCredentials
	}

	usr := User{ID: id, Role: RoleAdmin, Username: username}
	token, err := Issue(Claims{ID: id, Role: RoleAdmin, Username: username}, s.issuer, s.signingKey, s.ttl)
	if err != nil {
		return "", User{}, err
	}
	return token, usr, nil
}

// FacultyLogin checks a faculty email/password and returns a signed token.
func (s *Service) FacultyLogin(ctx context.Context, email, password string) (string, User, error) {
	var (
		id   int
		name string
		hash string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM faculty WHERE email = $1`, email,
	).Scan(&id, &name, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", User{}, ErrInvalidCredentials
	}

	usr := User{ID: id, Role: RoleFaculty, Name: name, Email: email}
	token, err := Issue(Claims{ID: id, Role: RoleFaculty, Name: name, Email: email}, s.issuer, s.signingKey, s.ttl)
	if err != nil {
		return "", User{}, err
	}
	return token, usr, nil
}
