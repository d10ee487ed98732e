package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ralt/rpminventory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePackages = []models.Package{
	{Status: "i+", Name: "libfoo", Version: "1.2.3", Arch: "x86_64", Repo: "main-repo", RepoURL: "https://example.com/repo"},
	{Status: "i", Name: "libbar", Version: "9.9", Arch: "noarch", Repo: "@System", RepoURL: "Unknown"},
}

func TestEncodeFormat(t *testing.T) {
	data, err := Encode(samplePackages[:1])
	require.NoError(t, err)

	want := `[
  {
    "status": "i+",
    "name": "libfoo",
    "version": "1.2.3",
    "arch": "x86_64",
    "repo": "main-repo",
    "repo_url": "https://example.com/repo"
  }
]`
	assert.Equal(t, want, string(data))
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new inventory"), 0644))

	written, data, err := Write(dir, "inventory.json", nil)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(onDisk))
	assert.Equal(t, data, onDisk)
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, name := range []string{"inventory.json", "inventory.json.gz", "inventory.json.xz", "inventory.json.zst"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()

			path, _, err := Write(dir, name, samplePackages)
			require.NoError(t, err)

			packages, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, samplePackages, packages)
		})
	}
}

func TestReadAcceptsMinimalRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"libfoo","version":"1.2.3"}]`), 0644))

	packages, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Package{{Name: "libfoo", Version: "1.2.3"}}, packages)
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"name":`), 0644))

	for _, path := range []string{invalid, filepath.Join(dir, "missing.json")} {
		_, err := Read(path)
		require.Error(t, err)
		assert.True(t, models.IsErrorType(err, models.ErrFileOp))
	}
}
