package reader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSimpleDirectoryReaderLoadsSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# beta"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.bin"), []byte{0x00}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("nope"), 0o644))

	r, err := NewSimpleDirectoryReader(dir)
	require.NoError(t, err)

	docs, err := r.LoadData(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Path order keeps loads deterministic.
	assert.Equal(t, "alpha", docs[0].Text)
	assert.Equal(t, "a.txt", docs[0].Metadata["file_name"])
	assert.Equal(t, "# beta", docs[1].Text)
	assert.Equal(t, "md", docs[1].Metadata["file_type"])
}

func TestSimpleDirectoryReaderRecursion(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "nested.txt"), []byte("nested"), 0o644))

	flat, err := NewSimpleDirectoryReader(dir)
	require.NoError(t, err)
	docs, err := flat.LoadData(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	deep, err := NewSimpleDirectoryReader(dir, WithRecursive(true))
	require.NoError(t, err)
	docs, err = deep.LoadData(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestSimpleDirectoryReaderEmptyDirFails(t *testing.T) {
	r, err := NewSimpleDirectoryReader(t.TempDir())
	require.NoError(t, err)

	_, err = r.LoadData(context.Background())
	assert.Error(t, err)

	var rerr *ReaderError
	assert.True(t, errors.As(err, &rerr))
}

func TestSimpleDirectoryReaderRequiresDir(t *testing.T) {
	_, err := NewSimpleDirectoryReader("")
	assert.Error(t, err)
}

func TestSimpleDirectoryReaderExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.log"), []byte("beta"), 0o644))

	r, err := NewSimpleDirectoryReader(dir, WithExtensions(".log"))
	require.NoError(t, err)

	docs, err := r.LoadData(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "beta", docs[0].Text)
}

func TestPDFReaderRequiresFiles(t *testing.T) {
	_, err := NewPDFReader().LoadData(context.Background())
	assert.Error(t, err)
}

func TestMongoReaderRequiresConnectionInfo(t *testing.T) {
	_, err := NewMongoReader(context.Background(), "", "db", "coll")
	assert.Error(t, err)

	_, err = NewMongoReaderFromHost(context.Background(), "", 0, "db", "coll")
	assert.Error(t, err)
}

func TestDocumentFromRecord(t *testing.T) {
	doc, err := documentFromRecord(bson.M{"text": "hello", "_id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Text)
	assert.Equal(t, "abc", doc.Metadata["source_id"])

	_, err = documentFromRecord(bson.M{"body": "hello"})
	assert.Error(t, err)

	_, err = documentFromRecord(bson.M{"text": 42})
	assert.Error(t, err)
}
