// Package domain defines capability tokens, delegation chains and the
// attenuation rules that govern them.
package domain

import (
	"strings"
	"time"

	"github.com/publiish/bio-did-seq/internal/keystore"
)

// Action is a right a capability token can grant.
type Action string

// Supported actions.
const (
	ActionRead     Action = "read"
	ActionWrite    Action = "write"
	ActionDelegate Action = "delegate"
	ActionRevoke   Action = "revoke"
)

// AllActions lists every action a root token may carry.
var AllActions = Actions{ActionRead, ActionWrite, ActionDelegate, ActionRevoke}

// Actions is a set of granted rights.
type Actions []Action

// Contains reports whether the set grants the action.
func (a Actions) Contains(action Action) bool {
	for _, got := range a {
		if got == action {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every action in the set appears in parent.
func (a Actions) SubsetOf(parent Actions) bool {
	for _, action := range a {
		if !parent.Contains(action) {
			return false
		}
	}
	return true
}

// Scope is a set of resource patterns. A pattern is an exact content id,
// a prefix pattern ending in "*", or the bare "*" wildcard.
type Scope []string

// Covers reports whether any pattern in the scope matches the resource.
func (s Scope) Covers(resource string) bool {
	for _, pattern := range s {
		if patternCovers(pattern, resource) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every pattern in the scope is subsumed by some
// pattern of the parent scope. A narrower prefix is subsumed by a shorter
// one; exact ids are subsumed by themselves or a matching prefix.
func (s Scope) SubsetOf(parent Scope) bool {
	for _, pattern := range s {
		subsumed := false
		for _, parentPattern := range parent {
			if patternSubsumes(parentPattern, pattern) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			return false
		}
	}
	return true
}

func patternCovers(pattern, resource string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(resource, prefix)
	}
	return pattern == resource
}

// patternSubsumes reports whether parent grants at least everything child
// does.
func patternSubsumes(parent, child string) bool {
	if parent == "*" {
		return true
	}
	parentPrefix, parentWild := strings.CutSuffix(parent, "*")
	childPrefix, childWild := strings.CutSuffix(child, "*")
	if parentWild {
		return strings.HasPrefix(childPrefix, parentPrefix)
	}
	// An exact parent only subsumes the identical exact id.
	return !childWild && parent == child
}

// Token is a single capability: a grant from Issuer to Audience over Scope
// for Actions, signed by the issuer's key at KeyEpoch. ParentID is empty
// for a root token.
type Token struct {
	ID        string             `json:"id"`
	Issuer    string             `json:"issuer"`
	Audience  string             `json:"audience"`
	Scope     Scope              `json:"scope"`
	Actions   Actions            `json:"actions"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
	IssuedAt  time.Time          `json:"issued_at"`
	KeyEpoch  uint64             `json:"key_epoch"`
	Algorithm keystore.Algorithm `json:"algorithm"`
	Signature []byte             `json:"signature"`
	ParentID  string             `json:"parent_id,omitempty"`
}

// Expired reports whether the token itself has passed its expiry at now.
// Absent expiry means the token never expires.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// Chain is an ordered delegation chain, root first. Every link's audience
// is the next link's issuer, and every link attenuates its parent.
type Chain []*Token

// Leaf returns the last token of the chain, or nil for an empty chain.
func (c Chain) Leaf() *Token {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}
