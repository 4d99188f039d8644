package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	capabilityDomain "github.com/publiish/bio-did-seq/internal/capability/domain"
	contentDomain "github.com/publiish/bio-did-seq/internal/content/domain"
)

func testBinding() *contentDomain.Binding {
	return &contentDomain.Binding{
		ID:        "0195a0b2-7c1e-7bb0-b1a5-444444444444",
		DID:       "did:bio:holder",
		ContentID: "c1",
		Actions:   capabilityDomain.Actions{capabilityDomain.ActionRead, capabilityDomain.ActionWrite},
		TokenID:   "tok-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPostgreSQLBindingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	binding := testBinding()

	mock.ExpectExec("INSERT INTO content_bindings").
		WithArgs(binding.ID, binding.DID, binding.ContentID, sqlmock.AnyArg(), binding.TokenID, binding.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLBindingRepository(db)
	assert.NoError(t, repo.Create(context.Background(), binding))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLBindingRepository_GetLatest(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		binding := testBinding()
		actions, err := json.Marshal(binding.Actions)
		require.NoError(t, err)

		mock.ExpectQuery("SELECT id, did, content_id, actions, token_id, created_at").
			WithArgs(binding.DID, binding.ContentID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "did", "content_id", "actions", "token_id", "created_at"}).
				AddRow(binding.ID, binding.DID, binding.ContentID, actions, binding.TokenID, binding.CreatedAt))

		repo := NewPostgreSQLBindingRepository(db)
		got, err := repo.GetLatest(context.Background(), binding.DID, binding.ContentID)
		require.NoError(t, err)
		assert.Equal(t, binding.Actions, got.Actions)
		assert.Equal(t, binding.TokenID, got.TokenID)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, did, content_id, actions, token_id, created_at").
			WithArgs("did:bio:nobody", "c1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "did", "content_id", "actions", "token_id", "created_at"}))

		repo := NewPostgreSQLBindingRepository(db)
		_, err = repo.GetLatest(context.Background(), "did:bio:nobody", "c1")
		assert.ErrorIs(t, err, contentDomain.ErrBindingNotFound)
	})
}
