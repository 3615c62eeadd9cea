package auth

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bookManagement/models"
)

var (
	// ErrMissingFields means the login request omitted username, password, or role.
	ErrMissingFields = errors.New("username, password, and role are required")
	// ErrInvalidCredentials means the username is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleMismatch means the directory's recorded role differs from the claimed role.
	ErrRoleMismatch = errors.New("unauthorized role")
)

type directoryEntry struct {
	passwordHash string
	role         models.Role
}

// Authenticator verifies {username, password, claimed role} triples against an
// immutable user directory and mints session tokens. It is constructed once at
// startup with the directory snapshot and the signing configuration; there is
// no ambient global state and the directory never changes at runtime.
type Authenticator struct {
	users    map[string]directoryEntry
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthenticator builds an Authenticator from a directory snapshot.
func NewAuthenticator(users []models.User, secret string, tokenTTL time.Duration) *Authenticator {
	dir := make(map[string]directoryEntry, len(users))
	for _, u := range users {
		dir[u.Username] = directoryEntry{passwordHash: u.PasswordHash, role: u.Role}
	}
	return &Authenticator{users: dir, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Login verifies the credential triple and returns a signed session token.
// Password comparison goes through bcrypt, which never short-circuits on raw
// password bytes.
func (a *Authenticator) Login(username, password, claimedRole string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" || strings.TrimSpace(claimedRole) == "" {
		return "", ErrMissingFields
	}

	entry, ok := a.users[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(entry.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	role, ok := models.ParseRole(claimedRole)
	if !ok || role != entry.role {
		return "", ErrRoleMismatch
	}

	return generateToken(username, role, a.secret, a.tokenTTL)
}

// VerifyToken validates a presented session token and returns its Principal.
func (a *Authenticator) VerifyToken(token string) (*Principal, error) {
	return parseToken(token, a.secret)
}
