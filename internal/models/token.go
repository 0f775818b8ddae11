package models

import "fake-auth/internal/identifier"

// TokenType discriminates how a token was obtained. Only the implicit type is
// issued today.
type TokenType int16

const TokenTypeImplicit TokenType = 0

type Token struct {
	Token  identifier.Token  `json:"token" db:"token"`
	Type   TokenType         `json:"type" db:"type"`
	UserID identifier.UserID `json:"user_id" db:"user_id"`
	Scopes string            `json:"scopes" db:"scopes"`
}
