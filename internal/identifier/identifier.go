// Package identifier converts the fixed-width binary identifiers used by the
// credential store to and from their hexadecimal wire form.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	UserIDSize = 8
	TokenSize  = 16
)

var (
	ErrMalformed       = errors.New("malformed identifier")
	ErrInvalidLength   = fmt.Errorf("%w: invalid length", ErrMalformed)
	ErrInvalidEncoding = fmt.Errorf("%w: invalid hex encoding", ErrMalformed)
)

// UserID is the 8-byte primary key of a user.
type UserID [UserIDSize]byte

// Token is the 16-byte opaque bearer credential.
type Token [TokenSize]byte

func ParseUserID(s string) (UserID, error) {
	var id UserID
	err := decodeFixed(id[:], s)
	return id, err
}

func ParseToken(s string) (Token, error) {
	var t Token
	err := decodeFixed(t[:], s)
	return t, err
}

// NewUserID draws a random user identifier.
func NewUserID() (UserID, error) {
	var id UserID
	if _, err := rand.Read(id[:]); err != nil {
		return id, fmt.Errorf("failed to generate user id: %w", err)
	}
	return id, nil
}

// NewToken draws a random 128-bit token value.
func NewToken() (Token, error) {
	var t Token
	if _, err := rand.Read(t[:]); err != nil {
		return t, fmt.Errorf("failed to generate token: %w", err)
	}
	return t, nil
}

// decodeFixed checks the character count before decoding so that a short or
// padded string can never decode into a different number of bytes than dst.
func decodeFixed(dst []byte, s string) error {
	if len(s) != hex.EncodedLen(len(dst)) {
		return ErrInvalidLength
	}
	n, err := hex.Decode(dst, []byte(s))
	if err != nil {
		return ErrInvalidEncoding
	}
	if n != len(dst) {
		return ErrInvalidLength
	}
	return nil
}

func scanFixed(dst []byte, src any) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into a %d-byte identifier", src, len(dst))
	}
	if len(b) != len(dst) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), len(dst))
	}
	copy(dst, b)
	return nil
}

func (id UserID) String() string { return hex.EncodeToString(id[:]) }

func (id UserID) Bytes() []byte { return id[:] }

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *UserID) Scan(src any) error { return scanFixed(id[:], src) }

func (t Token) String() string { return hex.EncodeToString(t[:]) }

func (t Token) Bytes() []byte { return t[:] }

func (t Token) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Token) UnmarshalText(text []byte) error {
	parsed, err := ParseToken(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Token) Scan(src any) error { return scanFixed(t[:], src) }
