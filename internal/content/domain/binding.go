// Package domain defines content bindings: the append-only record tying a
// DID to a stored content identifier and the rights it was stored under.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	"github.com/publiish/bio-did-seq/internal/errors"
)

// ContentID returns the identifier for a payload: the hex sha256 of its
// bytes. Identical payloads always map to the same id.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Binding records an authorized upload. Entries are append-only; a newer
// entry for the same (DID, content id) shadows earlier ones, which are
// retained for audit.
type Binding struct {
	ID        string                   `json:"id"`
	DID       string                   `json:"did"`
	ContentID string                   `json:"content_id"`
	Actions   capabilityDomain.Actions `json:"actions"`
	TokenID   string                   `json:"token_id"`
	CreatedAt time.Time                `json:"created_at"`
}

// Domain errors for content access.
var (
	// ErrContentNotFound indicates the content store has no such identifier.
	ErrContentNotFound = errors.Wrap(errors.ErrNotFound, "content not found")

	// ErrBindingNotFound indicates no binding row exists for the lookup key.
	ErrBindingNotFound = errors.Wrap(errors.ErrNotFound, "binding not found")

	// ErrNoBindingPermits indicates a structurally valid chain whose holder
	// lineage has no binding for the requested content.
	ErrNoBindingPermits = errors.Wrap(errors.ErrForbidden, "no binding permits the holder")
)
