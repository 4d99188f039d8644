// Package dto provides data transfer objects for the DID HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/publiish/bio-did-seq/internal/validation"
)

// ServiceEndpointDTO is the wire form of a service endpoint.
type ServiceEndpointDTO struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Endpoint string `json:"endpoint"`
}

// ResearcherDTO is the wire form of a dataset researcher entry.
type ResearcherDTO struct {
	Name        string `json:"name"`
	ORCID       string `json:"orcid,omitempty"`
	Role        string `json:"role,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// MetadataDTO is the wire form of dataset metadata.
type MetadataDTO struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Researchers []ResearcherDTO `json:"researchers,omitempty"`
	Keywords    []string        `json:"keywords,omitempty"`
	License     string          `json:"license,omitempty"`
	DOI         string          `json:"doi,omitempty"`
}

// CreateDocumentRequest represents the API request for DID creation. Key
// material travels base64-encoded.
type CreateDocumentRequest struct {
	Controller string               `json:"controller,omitempty"`
	Algorithm  string               `json:"algorithm"`
	PublicKey  string               `json:"public_key"`
	SigningKey string               `json:"signing_key"`
	Services   []ServiceEndpointDTO `json:"services,omitempty"`
	Metadata   *MetadataDTO         `json:"metadata,omitempty"`
}

// Validate validates the CreateDocumentRequest.
func (r *CreateDocumentRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Algorithm,
			validation.Required.Error("algorithm is required"),
			validation.In("ml-dsa-87", "ed25519").Error("algorithm must be ml-dsa-87 or ed25519"),
		),
		validation.Field(&r.PublicKey,
			validation.Required.Error("public_key is required"),
			appValidation.Base64,
		),
		validation.Field(&r.SigningKey,
			validation.Required.Error("signing_key is required"),
			appValidation.Base64,
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateDocumentRequest represents the API request for a DID document update.
type UpdateDocumentRequest struct {
	BaseVersion      uint64               `json:"base_version"`
	Controller       string               `json:"controller,omitempty"`
	AddServices      []ServiceEndpointDTO `json:"add_services,omitempty"`
	RemoveServiceIDs []string             `json:"remove_service_ids,omitempty"`
	Metadata         *MetadataDTO         `json:"metadata,omitempty"`
	SigningEpoch     uint64               `json:"signing_epoch"`
	SigningKey       string               `json:"signing_key"`
}

// Validate validates the UpdateDocumentRequest.
func (r *UpdateDocumentRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.BaseVersion, validation.Required.Error("base_version is required")),
		validation.Field(&r.SigningEpoch, validation.Required.Error("signing_epoch is required")),
		validation.Field(&r.SigningKey,
			validation.Required.Error("signing_key is required"),
			appValidation.Base64,
		),
	)
	return appValidation.WrapValidationError(err)
}

// RotateKeyRequest represents the API request for appending a new key.
type RotateKeyRequest struct {
	BaseVersion  uint64 `json:"base_version"`
	NewAlgorithm string `json:"new_algorithm"`
	NewPublicKey string `json:"new_public_key"`
	SigningEpoch uint64 `json:"signing_epoch"`
	SigningKey   string `json:"signing_key"`
}

// Validate validates the RotateKeyRequest.
func (r *RotateKeyRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.BaseVersion, validation.Required.Error("base_version is required")),
		validation.Field(&r.NewAlgorithm,
			validation.Required.Error("new_algorithm is required"),
			validation.In("ml-dsa-87", "ed25519").Error("new_algorithm must be ml-dsa-87 or ed25519"),
		),
		validation.Field(&r.NewPublicKey,
			validation.Required.Error("new_public_key is required"),
			appValidation.Base64,
		),
		validation.Field(&r.SigningEpoch, validation.Required.Error("signing_epoch is required")),
		validation.Field(&r.SigningKey,
			validation.Required.Error("signing_key is required"),
			appValidation.Base64,
		),
	)
	return appValidation.WrapValidationError(err)
}

// RevokeKeyRequest represents the API request for revoking a key epoch.
type RevokeKeyRequest struct {
	BaseVersion  uint64 `json:"base_version"`
	RevokeEpoch  uint64 `json:"revoke_epoch"`
	SigningEpoch uint64 `json:"signing_epoch"`
	SigningKey   string `json:"signing_key"`
}

// Validate validates the RevokeKeyRequest.
func (r *RevokeKeyRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.BaseVersion, validation.Required.Error("base_version is required")),
		validation.Field(&r.RevokeEpoch, validation.Required.Error("revoke_epoch is required")),
		validation.Field(&r.SigningEpoch, validation.Required.Error("signing_epoch is required")),
		validation.Field(&r.SigningKey,
			validation.Required.Error("signing_key is required"),
			appValidation.Base64,
		),
	)
	return appValidation.WrapValidationError(err)
}
