package models

import "fake-auth/internal/identifier"

type User struct {
	ID              identifier.UserID `json:"id" db:"id"`
	Username        string            `json:"username" db:"username"`
	Email           string            `json:"email" db:"email"`
	Name            string            `json:"name" db:"name"`
	ProfileImageURL string            `json:"profile_image_url" db:"profile_image_url"`
	AuthCode        []byte            `json:"-" db:"auth_code"`
}
