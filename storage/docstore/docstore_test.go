package docstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsynth/go-ragsynth/schema"
	"github.com/ragsynth/go-ragsynth/storage/kvstore"
)

func newStore(t *testing.T) *DocumentStore {
	t.Helper()
	kv, err := kvstore.NewJSONKVStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	store, err := NewDocumentStore(kv)
	require.NoError(t, err)
	return store
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	doc := schema.NewDocument("hello world")
	doc.Metadata["file_name"] = "a.txt"
	require.NoError(t, store.AddDocuments(ctx, []schema.Document{*doc}))

	got, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Text)
	assert.Equal(t, "a.txt", got.Metadata["file_name"])

	exists, err := store.DocumentExists(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDocumentStoreGetAllKeepsInsertionOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// IDs sort against insertion order on purpose.
	docs := []schema.Document{
		{ID: "zzz", Text: "chapter one"},
		{ID: "aaa", Text: "chapter two"},
	}
	require.NoError(t, store.AddDocuments(ctx, docs))
	require.NoError(t, store.AddDocuments(ctx, []schema.Document{{ID: "mmm", Text: "chapter three"}}))

	all, err := store.GetAllDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "chapter one", all[0].Text)
	assert.Equal(t, "chapter two", all[1].Text)
	assert.Equal(t, "chapter three", all[2].Text)
}

func TestDocumentStoreOrderSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	ctx := context.Background()

	kv, err := kvstore.NewJSONKVStore(path)
	require.NoError(t, err)
	store, err := NewDocumentStore(kv)
	require.NoError(t, err)

	require.NoError(t, store.AddDocuments(ctx, []schema.Document{
		{ID: "zzz", Text: "chapter one"},
		{ID: "aaa", Text: "chapter two"},
	}))

	reopened, err := kvstore.NewJSONKVStore(path)
	require.NoError(t, err)
	store2, err := NewDocumentStore(reopened)
	require.NoError(t, err)

	all, err := store2.GetAllDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "chapter one", all[0].Text)
	assert.Equal(t, "chapter two", all[1].Text)
}

func TestDocumentStoreOverwriteKeepsOriginalPosition(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddDocuments(ctx, []schema.Document{
		{ID: "first", Text: "one"},
		{ID: "second", Text: "two"},
	}))
	require.NoError(t, store.AddDocuments(ctx, []schema.Document{{ID: "first", Text: "one, revised"}}))

	all, err := store.GetAllDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "one, revised", all[0].Text)
	assert.Equal(t, "two", all[1].Text)
}

func TestDocumentStoreMissingDocument(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.GetDocument(ctx, "nope")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	err = store.DeleteDocument(ctx, "nope")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentStoreDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	doc := schema.Document{ID: "x", Text: "gone soon"}
	require.NoError(t, store.AddDocuments(ctx, []schema.Document{doc}))
	require.NoError(t, store.DeleteDocument(ctx, "x"))

	exists, err := store.DocumentExists(ctx, "x")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDocumentStoreRejectsMissingID(t *testing.T) {
	store := newStore(t)
	err := store.AddDocuments(context.Background(), []schema.Document{{Text: "no id"}})
	assert.Error(t, err)
}
