package domain

import "time"

// VerificationCode is a short-lived one-time code proving control of an inbox.
// PK: email — at most one live code per address; a new put replaces the old one.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"code" dynamodbav:"code"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// VerificationToken is the opaque single-purpose credential issued when a code
// check succeeds. It is the only accepted proof of verification for a later
// waitlist submission.
// PK: token. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationToken struct {
	Token     string    `json:"token" dynamodbav:"token"`
	Email     string    `json:"email" dynamodbav:"email"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the token is past its lifetime at the given instant.
// Rows linger until the TTL sweep deletes them, so readers must check.
func (t *VerificationToken) Expired(now time.Time) bool {
	return t.ExpiresAt < now.Unix()
}
