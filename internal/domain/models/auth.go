package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims carried by an access token issued
// for the document library. The subject claim identifies the owner whose
// library the request operates on.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetOwnerID returns the owner ID from the JWT subject claim.
func (c *AccessClaims) GetOwnerID() string {
	return c.Subject
}
