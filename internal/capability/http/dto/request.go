// Package dto provides data transfer objects for the capability HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	appValidation "github.com/publiish/bio-did-seq/internal/validation"
)

// IssueRootRequest represents the API request for issuing a root token.
type IssueRootRequest struct {
	IssuerDID    string     `json:"issuer_did"`
	AudienceDID  string     `json:"audience_did"`
	Scope        []string   `json:"scope"`
	Actions      []string   `json:"actions"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	SigningEpoch uint64     `json:"signing_epoch"`
	SigningKey   string     `json:"signing_key"`
}

// Validate validates the IssueRootRequest.
func (r *IssueRootRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.IssuerDID, validation.Required.Error("issuer_did is required"), appValidation.DID),
		validation.Field(&r.AudienceDID, validation.Required.Error("audience_did is required"), appValidation.DID),
		validation.Field(&r.Scope, validation.Required.Error("scope is required")),
		validation.Field(&r.Actions,
			validation.Required.Error("actions is required"),
			validation.Each(appValidation.Action),
		),
		validation.Field(&r.SigningEpoch, validation.Required.Error("signing_epoch is required")),
		validation.Field(&r.SigningKey,
			validation.Required.Error("signing_key is required"),
			appValidation.Base64,
		),
	)
	return appValidation.WrapValidationError(err)
}

// DelegateRequest represents the API request for delegating a child token.
type DelegateRequest struct {
	ParentID     string     `json:"parent_id"`
	AudienceDID  string     `json:"audience_did"`
	Scope        []string   `json:"scope"`
	Actions      []string   `json:"actions"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	SigningEpoch uint64     `json:"signing_epoch"`
	SigningKey   string     `json:"signing_key"`
}

// Validate validates the DelegateRequest.
func (r *DelegateRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ParentID, validation.Required.Error("parent_id is required"), appValidation.HexID),
		validation.Field(&r.AudienceDID, validation.Required.Error("audience_did is required"), appValidation.DID),
		validation.Field(&r.Scope, validation.Required.Error("scope is required")),
		validation.Field(&r.Actions,
			validation.Required.Error("actions is required"),
			validation.Each(appValidation.Action),
		),
		validation.Field(&r.SigningEpoch, validation.Required.Error("signing_epoch is required")),
		validation.Field(&r.SigningKey,
			validation.Required.Error("signing_key is required"),
			appValidation.Base64,
		),
	)
	return appValidation.WrapValidationError(err)
}

// VerifyRequest represents the API request for verifying a delegation chain.
// The chain is reassembled server side from the leaf token id.
type VerifyRequest struct {
	TokenID  string `json:"token_id"`
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

// Validate validates the VerifyRequest.
func (r *VerifyRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.TokenID, validation.Required.Error("token_id is required"), appValidation.HexID),
		validation.Field(&r.Action, validation.Required.Error("action is required"), appValidation.Action),
		validation.Field(&r.Resource, validation.Required.Error("resource is required")),
	)
	return appValidation.WrapValidationError(err)
}

// RevokeRequest represents the API request for revoking a token.
type RevokeRequest struct {
	TokenID string `json:"token_id"`
}

// Validate validates the RevokeRequest.
func (r *RevokeRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.TokenID, validation.Required.Error("token_id is required"), appValidation.HexID),
	)
	return appValidation.WrapValidationError(err)
}
