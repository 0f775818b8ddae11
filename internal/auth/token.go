package auth

import (
	"context"
	"crypto/rand"
	"fmt"

	"fake-auth/internal/identifier"
	"fake-auth/internal/models"
)

const AuthCodeSize = 12

// TokenWriter persists issued tokens.
type TokenWriter interface {
	CreateToken(ctx context.Context, token *models.Token) error
}

// IssueToken draws a fresh 128-bit token bound to userID and stores it. The
// token must not be considered saved when an error is returned.
func IssueToken(ctx context.Context, w TokenWriter, tokenType models.TokenType, userID identifier.UserID) (*models.Token, error) {
	value, err := identifier.NewToken()
	if err != nil {
		return nil, err
	}

	token := &models.Token{
		Token:  value,
		Type:   tokenType,
		UserID: userID,
		Scopes: "",
	}

	if err := w.CreateToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// NewAuthCode returns the random code recorded against a user on login.
func NewAuthCode() ([]byte, error) {
	code := make([]byte, AuthCodeSize)
	if _, err := rand.Read(code); err != nil {
		return nil, fmt.Errorf("failed to generate auth code: %w", err)
	}
	return code, nil
}
