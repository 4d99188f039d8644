package dto

import (
	"encoding/base64"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
)

func toActions(actions []string) capabilityDomain.Actions {
	out := make(capabilityDomain.Actions, len(actions))
	for i, a := range actions {
		out[i] = capabilityDomain.Action(a)
	}
	return out
}

func fromActions(actions capabilityDomain.Actions) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}

// ToIssueRootInput converts a validated request to a domain input.
// Base64 fields are assumed valid after Validate.
func ToIssueRootInput(req *IssueRootRequest) *capabilityDomain.IssueRootInput {
	signingKey, _ := base64.StdEncoding.DecodeString(req.SigningKey)
	return &capabilityDomain.IssueRootInput{
		IssuerDID:    req.IssuerDID,
		AudienceDID:  req.AudienceDID,
		Scope:        capabilityDomain.Scope(req.Scope),
		Actions:      toActions(req.Actions),
		ExpiresAt:    req.ExpiresAt,
		SigningEpoch: req.SigningEpoch,
		SigningKey:   signingKey,
	}
}

// ToDelegateInput converts a validated request to a domain input.
func ToDelegateInput(req *DelegateRequest) *capabilityDomain.DelegateInput {
	signingKey, _ := base64.StdEncoding.DecodeString(req.SigningKey)
	return &capabilityDomain.DelegateInput{
		ParentID:     req.ParentID,
		AudienceDID:  req.AudienceDID,
		Scope:        capabilityDomain.Scope(req.Scope),
		Actions:      toActions(req.Actions),
		ExpiresAt:    req.ExpiresAt,
		SigningEpoch: req.SigningEpoch,
		SigningKey:   signingKey,
	}
}

// FromToken converts a domain token to its response representation.
func FromToken(token *capabilityDomain.Token) *TokenResponse {
	return &TokenResponse{
		ID:        token.ID,
		Issuer:    token.Issuer,
		Audience:  token.Audience,
		Scope:     []string(token.Scope),
		Actions:   fromActions(token.Actions),
		ExpiresAt: token.ExpiresAt,
		IssuedAt:  token.IssuedAt,
		KeyEpoch:  token.KeyEpoch,
		Algorithm: string(token.Algorithm),
		Signature: base64.StdEncoding.EncodeToString(token.Signature),
		ParentID:  token.ParentID,
	}
}

// FromChain converts a domain chain to its response representation.
func FromChain(chain capabilityDomain.Chain) *ChainResponse {
	resp := &ChainResponse{Chain: make([]TokenResponse, len(chain))}
	for i, token := range chain {
		resp.Chain[i] = *FromToken(token)
	}
	return resp
}
