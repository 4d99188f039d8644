package dto

import "time"

// TokenResponse represents a capability token in API responses.
type TokenResponse struct {
	ID        string     `json:"id"`
	Issuer    string     `json:"issuer"`
	Audience  string     `json:"audience"`
	Scope     []string   `json:"scope"`
	Actions   []string   `json:"actions"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IssuedAt  time.Time  `json:"issued_at"`
	KeyEpoch  uint64     `json:"key_epoch"`
	Algorithm string     `json:"algorithm"`
	Signature string     `json:"signature"`
	ParentID  string     `json:"parent_id,omitempty"`
}

// VerifyResponse reports the outcome of a successful chain verification.
type VerifyResponse struct {
	Authorized       bool     `json:"authorized"`
	EffectiveActions []string `json:"effective_actions"`
}

// ChainResponse represents a delegation chain, root first.
type ChainResponse struct {
	Chain []TokenResponse `json:"chain"`
}
