package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataengine/internal/types"
)

func TestDiscoverDirectoryClassifiesAndSorts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	res, err := Discover(Dir(dir))
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	assert.Equal(t, types.TypeCSV, res.Files[0].Type)
	assert.Equal(t, filepath.Join(dir, "a.csv"), res.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.csv"), res.Files[1].Path)
	assert.Equal(t, types.TypeJSON, res.Files[2].Type)
}

func TestDiscoverEmptyDirectoryReturnsErrNoFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Discover(Dir(dir))
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.xml")
	require.NoError(t, os.WriteFile(path, []byte("<a/>"), 0o644))

	res, err := Discover(SingleFile(path))
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, types.TypeXML, res.Files[0].Type)
	assert.Empty(t, res.Skipped)
}

func TestDiscoverSingleFileUnsupportedExtensionIsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	res, err := Discover(SingleFile(path))
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, path, res.Skipped[0].Path)
}

func TestDiscoverListMixesFoundAndSkipped(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.log")
	require.NoError(t, os.WriteFile(good, []byte("x"), 0o644))
	missing := filepath.Join(dir, "missing.log")

	res, err := Discover(Files([]string{good, missing}))
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, missing, res.Skipped[0].Path)
}

func TestInputAccessors(t *testing.T) {
	in := Dir("/tmp/data")
	assert.Equal(t, KindDirectory, in.Kind())
	assert.Equal(t, "/tmp/data", in.Path())
}
