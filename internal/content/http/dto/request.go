// Package dto provides data transfer objects for the content HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/publiish/bio-did-seq/internal/validation"
)

// StoreContentRequest represents the API request for storing content under a
// capability. Data travels base64-encoded; the presented token id identifies
// the leaf of the authorizing chain.
type StoreContentRequest struct {
	TokenID string `json:"token_id"`
	Data    string `json:"data"`
}

// Validate validates the StoreContentRequest.
func (r *StoreContentRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.TokenID, validation.Required.Error("token_id is required"), appValidation.HexID),
		validation.Field(&r.Data,
			validation.Required.Error("data is required"),
			appValidation.Base64,
		),
	)
	return appValidation.WrapValidationError(err)
}
