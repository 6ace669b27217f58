package envutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	values := map[string]string{
		"API_BASE_URL": "http://localhost:8080",
		"CLIENT_ADDR":  ":3000",
	}
	require.NoError(t, WriteDotEnv(path, values, false))

	got, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, values, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, WriteDotEnv(path, map[string]string{"A": "1"}, false))
	assert.Error(t, WriteDotEnv(path, map[string]string{"A": "2"}, false))
	assert.NoError(t, WriteDotEnv(path, map[string]string{"A": "2"}, true))
}

func TestLoadKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHIPDESK_T1=file\nSHIPDESK_T2=file\n"), 0o600))
	t.Setenv("SHIPDESK_T1", "env")
	t.Setenv("SHIPDESK_T2", "")
	require.NoError(t, os.Unsetenv("SHIPDESK_T2"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "env", os.Getenv("SHIPDESK_T1"))
	assert.Equal(t, "file", os.Getenv("SHIPDESK_T2"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
