package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiish/bio-did-seq/internal/keystore"
)

func sampleDocument() *Document {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Document{
		DID:        "did:bio:0195a0b2-7c1e-7bb0-b1a5-111111111111",
		Controller: "did:bio:0195a0b2-7c1e-7bb0-b1a5-222222222222",
		Keys: []VerificationKey{
			{Epoch: 1, Algorithm: keystore.AlgorithmMLDSA87, PublicKey: []byte("pk-1"), Status: KeyStatusActive, AddedAt: now},
			{Epoch: 2, Algorithm: keystore.AlgorithmEd25519, PublicKey: []byte("pk-2"), Status: KeyStatusRevoked, AddedAt: now},
		},
		Services: []ServiceEndpoint{
			{ID: "#storage", Type: "ContentStore", Endpoint: "https://store.example/api"},
		},
		Metadata: &DatasetMetadata{
			Title:    "Soil microbiome survey",
			License:  "CC-BY-4.0",
			Keywords: []string{"soil", "16S"},
		},
		Version:      3,
		CreatedAt:    now.Add(-48 * time.Hour),
		UpdatedAt:    now,
		SigningEpoch: 1,
	}
}

func TestNewDID(t *testing.T) {
	did := NewDID("bio")
	assert.True(t, strings.HasPrefix(did, "did:bio:"))
	assert.NotEqual(t, did, NewDID("bio"))
}

func TestDocument_Keys(t *testing.T) {
	doc := sampleDocument()

	key, ok := doc.KeyByEpoch(2)
	require.True(t, ok)
	assert.Equal(t, KeyStatusRevoked, key.Status)

	_, ok = doc.KeyByEpoch(9)
	assert.False(t, ok)

	assert.Len(t, doc.ActiveKeys(), 1)
	assert.False(t, doc.Frozen())
	assert.Equal(t, uint64(3), doc.NextEpoch())

	doc.Keys[0].Status = KeyStatusRevoked
	assert.True(t, doc.Frozen())
}

func TestDocument_Clone(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	clone.Keys[0].Status = KeyStatusRevoked
	clone.Services[0].Endpoint = "changed"
	clone.Metadata.Keywords[0] = "changed"

	assert.Equal(t, KeyStatusActive, doc.Keys[0].Status)
	assert.Equal(t, "https://store.example/api", doc.Services[0].Endpoint)
	assert.Equal(t, "soil", doc.Metadata.Keywords[0])
}

func TestDocument_CanonicalBytes(t *testing.T) {
	doc := sampleDocument()

	first, err := doc.CanonicalBytes()
	require.NoError(t, err)
	second, err := doc.CanonicalBytes()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The superseded flag is not part of the signed content.
	doc.Superseded = true
	third, err := doc.CanonicalBytes()
	require.NoError(t, err)
	assert.Equal(t, first, third)

	// Any signed field changes the canonical bytes.
	doc.Version = 4
	fourth, err := doc.CanonicalBytes()
	require.NoError(t, err)
	assert.NotEqual(t, first, fourth)
}
