package domain

import "time"

// AdminToken is a long-lived bearer credential granting read/delete access to
// all submissions. PK: token — the surface looks credentials up by raw value.
// ID is carried as an attribute with a GSI for deactivation by id.
type AdminToken struct {
	ID          string     `json:"id" dynamodbav:"id"`
	Token       string     `json:"token" dynamodbav:"token"`
	Description string     `json:"description,omitempty" dynamodbav:"description"`
	IsActive    bool       `json:"is_active" dynamodbav:"is_active"`
	CreatedAt   time.Time  `json:"created_at" dynamodbav:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty" dynamodbav:"last_used_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" dynamodbav:"expires_at"`
}

// Usable reports whether the token may authorize a request at the given
// instant: it must be active and, when an expiry is set, not past it.
func (t *AdminToken) Usable(now time.Time) bool {
	if !t.IsActive {
		return false
	}
	if t.ExpiresAt != nil && t.ExpiresAt.Before(now) {
		return false
	}
	return true
}
