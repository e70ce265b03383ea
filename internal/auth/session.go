package auth

import (
	"context"
	"errors"
)

// ErrNoToken indicates no authentication token is available.
var ErrNoToken = errors.New("no authentication token available")

// User identifies the authenticated account holder.
type User struct {
	ID    string
	Email string
	Name  string
}

// Session supplies the bearer token and identity for backend requests.
// Identity issuance belongs to the external auth collaborator; this layer
// only consumes what it hands out.
type Session interface {
	Token(ctx context.Context) (string, error)
	CurrentUser() User
}

// StaticSession is a Session backed by a fixed token, typically from config.
type StaticSession struct {
	token string
	user  User
}

// NewStaticSession creates a session from a pre-issued token.
func NewStaticSession(token string, user User) *StaticSession {
	return &StaticSession{token: token, user: user}
}

func (s *StaticSession) Token(_ context.Context) (string, error) {
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *StaticSession) CurrentUser() User {
	return s.user
}
