package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/repository"
)

func newTestStore(t *testing.T) (repository.ComplaintStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reclamations.json")
	return repository.NewFileComplaintStore(path, zap.NewNop()), path
}

func sampleComplaint(id string) domain.Complaint {
	return domain.Complaint{
		ID:          id,
		Nom:         "Jean Dupont",
		Email:       "jean@example.com",
		Description: "Carte bloquée",
		Date:        "01/01/2024 10:00",
		Statut:      domain.ComplaintStatusPending,
	}
}

// TestLoadAbsentFile verifies an absent backing file reads as an empty collection.
func TestLoadAbsentFile(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Empty(t, store.Load())
}

// TestLoadEmptyFile verifies an empty backing file reads as an empty collection.
func TestLoadEmptyFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	assert.Empty(t, store.Load())
}

// TestLoadCorruptFile verifies corruption is swallowed, not surfaced.
func TestLoadCorruptFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Empty(t, store.Load())
}

// TestLoadNonArrayFile verifies a JSON object instead of an array reads as empty.
func TestLoadNonArrayFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0o644))

	assert.Empty(t, store.Load())
}

// TestAppendLoadRoundTrip verifies a stored record reads back structurally equal.
func TestAppendLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	complaint := sampleComplaint("c-1")

	require.NoError(t, store.Append(complaint))

	records := store.Load()
	require.Len(t, records, 1)
	assert.Equal(t, complaint, records[0])
}

// TestAppendPreservesOrder verifies records keep their append order.
func TestAppendPreservesOrder(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Append(sampleComplaint("c-1")))
	require.NoError(t, store.Append(sampleComplaint("c-2")))
	require.NoError(t, store.Append(sampleComplaint("c-3")))

	records := store.Load()
	require.Len(t, records, 3)
	assert.Equal(t, "c-1", records[0].ID)
	assert.Equal(t, "c-2", records[1].ID)
	assert.Equal(t, "c-3", records[2].ID)
}

// TestFindByID covers the found and absent cases.
func TestFindByID(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Append(sampleComplaint("c-1")))

	found, ok := store.FindByID("c-1")
	assert.True(t, ok)
	assert.Equal(t, "Jean Dupont", found.Nom)

	_, ok = store.FindByID("missing")
	assert.False(t, ok)
}

// TestUpdateStatusPersists verifies a status change survives a reopen of the file.
func TestUpdateStatusPersists(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Append(sampleComplaint("c-1")))

	require.NoError(t, store.UpdateStatus("c-1", domain.ComplaintStatusResolved))

	reopened := repository.NewFileComplaintStore(path, zap.NewNop())
	found, ok := reopened.FindByID("c-1")
	require.True(t, ok)
	assert.Equal(t, domain.ComplaintStatusResolved, found.Statut)
}

// TestUpdateStatusUnknownID verifies the not-found error.
func TestUpdateStatusUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.UpdateStatus("missing", domain.ComplaintStatusResolved)
	assert.ErrorIs(t, err, repository.ErrComplaintNotFound)
}
