package auth

import "attendly.io/entities"

type ClaimsData struct {
	Issuer    string
	UserID    string
	Name      string
	Email     string
	Role      entities.UserRole
	ExpiresAt int64
	IssuedAt  int64
	UserAgent string
	DeviceID  string
}
