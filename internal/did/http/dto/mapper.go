package dto

import (
	"encoding/base64"

	didDomain "github.com/publiish/bio-did-seq/internal/did/domain"
	"github.com/publiish/bio-did-seq/internal/keystore"
)

func servicesToDomain(services []ServiceEndpointDTO) []didDomain.ServiceEndpoint {
	if len(services) == 0 {
		return nil
	}
	out := make([]didDomain.ServiceEndpoint, len(services))
	for i, s := range services {
		out[i] = didDomain.ServiceEndpoint{ID: s.ID, Type: s.Type, Endpoint: s.Endpoint}
	}
	return out
}

func metadataToDomain(metadata *MetadataDTO) *didDomain.DatasetMetadata {
	if metadata == nil {
		return nil
	}
	out := &didDomain.DatasetMetadata{
		Title:       metadata.Title,
		Description: metadata.Description,
		Keywords:    metadata.Keywords,
		License:     metadata.License,
		DOI:         metadata.DOI,
	}
	for _, r := range metadata.Researchers {
		out.Researchers = append(out.Researchers, didDomain.Researcher{
			Name:        r.Name,
			ORCID:       r.ORCID,
			Role:        r.Role,
			Affiliation: r.Affiliation,
		})
	}
	return out
}

// ToCreateDocumentInput converts a validated request to a domain input.
// Base64 fields are assumed valid after Validate.
func ToCreateDocumentInput(req *CreateDocumentRequest) *didDomain.CreateDocumentInput {
	publicKey, _ := base64.StdEncoding.DecodeString(req.PublicKey)
	signingKey, _ := base64.StdEncoding.DecodeString(req.SigningKey)
	return &didDomain.CreateDocumentInput{
		Controller: req.Controller,
		Algorithm:  keystore.Algorithm(req.Algorithm),
		PublicKey:  publicKey,
		SigningKey: signingKey,
		Services:   servicesToDomain(req.Services),
		Metadata:   metadataToDomain(req.Metadata),
	}
}

// ToUpdateDocumentInput converts a validated request to a domain input.
func ToUpdateDocumentInput(did string, req *UpdateDocumentRequest) *didDomain.UpdateDocumentInput {
	signingKey, _ := base64.StdEncoding.DecodeString(req.SigningKey)
	return &didDomain.UpdateDocumentInput{
		DID:              did,
		BaseVersion:      req.BaseVersion,
		Controller:       req.Controller,
		AddServices:      servicesToDomain(req.AddServices),
		RemoveServiceIDs: req.RemoveServiceIDs,
		Metadata:         metadataToDomain(req.Metadata),
		SigningEpoch:     req.SigningEpoch,
		SigningKey:       signingKey,
	}
}

// ToRotateKeyInput converts a validated request to a domain input.
func ToRotateKeyInput(did string, req *RotateKeyRequest) *didDomain.RotateKeyInput {
	newPublicKey, _ := base64.StdEncoding.DecodeString(req.NewPublicKey)
	signingKey, _ := base64.StdEncoding.DecodeString(req.SigningKey)
	return &didDomain.RotateKeyInput{
		DID:          did,
		BaseVersion:  req.BaseVersion,
		NewAlgorithm: keystore.Algorithm(req.NewAlgorithm),
		NewPublicKey: newPublicKey,
		SigningEpoch: req.SigningEpoch,
		SigningKey:   signingKey,
	}
}

// ToRevokeKeyInput converts a validated request to a domain input.
func ToRevokeKeyInput(did string, req *RevokeKeyRequest) *didDomain.RevokeKeyInput {
	signingKey, _ := base64.StdEncoding.DecodeString(req.SigningKey)
	return &didDomain.RevokeKeyInput{
		DID:          did,
		BaseVersion:  req.BaseVersion,
		RevokeEpoch:  req.RevokeEpoch,
		SigningEpoch: req.SigningEpoch,
		SigningKey:   signingKey,
	}
}

// FromDocument converts a domain document to its response representation.
func FromDocument(doc *didDomain.Document) *DocumentResponse {
	resp := &DocumentResponse{
		DID:          doc.DID,
		Controller:   doc.Controller,
		Version:      doc.Version,
		Superseded:   doc.Superseded,
		SigningEpoch: doc.SigningEpoch,
		Signature:    base64.StdEncoding.EncodeToString(doc.Signature),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	for _, key := range doc.Keys {
		resp.Keys = append(resp.Keys, VerificationKeyResponse{
			Epoch:     key.Epoch,
			Algorithm: string(key.Algorithm),
			PublicKey: base64.StdEncoding.EncodeToString(key.PublicKey),
			Status:    string(key.Status),
			AddedAt:   key.AddedAt,
		})
	}
	for _, s := range doc.Services {
		resp.Services = append(resp.Services, ServiceEndpointDTO{ID: s.ID, Type: s.Type, Endpoint: s.Endpoint})
	}
	if doc.Metadata != nil {
		md := &MetadataDTO{
			Title:       doc.Metadata.Title,
			Description: doc.Metadata.Description,
			Keywords:    doc.Metadata.Keywords,
			License:     doc.Metadata.License,
			DOI:         doc.Metadata.DOI,
		}
		for _, r := range doc.Metadata.Researchers {
			md.Researchers = append(md.Researchers, ResearcherDTO{
				Name:        r.Name,
				ORCID:       r.ORCID,
				Role:        r.Role,
				Affiliation: r.Affiliation,
			})
		}
		resp.Metadata = md
	}
	return resp
}
