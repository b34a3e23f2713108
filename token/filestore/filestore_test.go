package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/logitrans/navigo-go/token"
	"github.com/logitrans/navigo-go/token/filestore"
	"github.com/stretchr/testify/require"
)

func TestSaveAndReadBack(t *testing.T) {
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	cred := token.Credential{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, fs.Save(cred))

	require.Equal(t, "access-1", fs.AccessToken())
	require.Equal(t, "refresh-1", fs.RefreshToken())
	// "access-1" is not a decodable JWT, so no user info is cached.
	require.Nil(t, fs.CachedUser())
}

func TestClearRemovesEverything(t *testing.T) {
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save(token.Credential{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, fs.Clear())

	require.Empty(t, fs.AccessToken())
	require.Empty(t, fs.RefreshToken())
	require.Nil(t, fs.CachedUser())
}

func TestClearOnEmptyStoreIsIdempotent(t *testing.T) {
	fs, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear())
}

func TestCorruptFileReadsAsEmptySession(t *testing.T) {
	dir := t.TempDir()
	fs, err := filestore.New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{garbage"), 0o600))

	require.Empty(t, fs.AccessToken())
	require.Empty(t, fs.RefreshToken())
	require.Nil(t, fs.CachedUser())
}
