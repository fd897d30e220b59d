package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Service {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCreateAndListCollections(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateCollection("beta"))
	require.NoError(t, store.CreateCollection("alpha"))

	assert.Equal(t, []string{"alpha", "beta"}, store.ListCollections())
}

func TestCreateDuplicateCollectionFails(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateCollection("notes"))

	err := store.CreateCollection("notes")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollectionExists)
}

func TestCountUnknownCollection(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Count("ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestAddAndQueryDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection("notes"))

	err := store.AddDocuments(ctx, "notes",
		[]string{
			"the camera dollies toward the actor",
			"color grading for night scenes",
		},
		[]map[string]interface{}{
			{"topic": "camera", "page": 1},
			{"topic": "color", "page": 2},
		},
		[]string{"d1", "d2"},
	)
	require.NoError(t, err)

	count, err := store.Count("notes")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	result, err := store.Query(ctx, "notes", []string{"camera dolly movement"}, 1)
	require.NoError(t, err)
	require.Len(t, result.IDs, 1)
	require.Len(t, result.IDs[0], 1)
	assert.Equal(t, "d1", result.IDs[0][0])
	assert.Equal(t, "the camera dollies toward the actor", result.Documents[0][0])
	assert.Equal(t, "camera", result.Metadatas[0][0]["topic"])
}

func TestQueryEmptyCollection(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateCollection("empty"))

	result, err := store.Query(context.Background(), "empty", []string{"anything"}, 5)
	require.NoError(t, err)
	require.Len(t, result.IDs, 1)
	assert.Empty(t, result.IDs[0])
}

func TestAddDocumentsLengthMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection("notes"))

	err := store.AddDocuments(ctx, "notes", []string{"one", "two"}, nil, []string{"only-one"})
	require.Error(t, err)

	err = store.AddDocuments(ctx, "notes", []string{"one"},
		[]map[string]interface{}{{"a": 1}, {"b": 2}}, []string{"d1"})
	require.Error(t, err)
}

func TestHashingEmbedderIsDeterministic(t *testing.T) {
	embed := newHashingEmbedder()
	ctx := context.Background()

	first, err := embed(ctx, "dolly shot at dusk")
	require.NoError(t, err)
	second, err := embed(ctx, "dolly shot at dusk")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := embed(ctx, "completely different text")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	empty, err := embed(ctx, "")
	require.NoError(t, err)
	assert.Len(t, empty, embeddingDim)
}
