package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string `json:"name"`
	Workers int    `json:"workers"`
	Nested  struct {
		URL string `json:"url"`
	} `json:"nested"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0666))
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		name: "base",
		workers: 6,
		nested: { url: "https://subastas.boe.es/" },
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ workers: 2 }`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "base", config.Name)
	require.Equal(t, 2, config.Workers)
	require.Equal(t, "https://subastas.boe.es/", config.Nested.URL)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "app.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestSplitExt(t *testing.T) {
	testCases := []struct {
		in   string
		name string
		ext  string
	}{
		{in: "subastas.json5", name: "subastas", ext: "json5"},
		{in: "a.b.c", name: "a.b", ext: "c"},
		{in: "noext", name: "noext", ext: ""},
	}
	for _, test := range testCases {
		name, ext := splitExt(test.in)
		require.Equal(t, test.name, name, test.in)
		require.Equal(t, test.ext, ext, test.in)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "SUBASTAS_TEST_DSN=file.db\n")
	t.Setenv("SUBASTAS_TEST_DSN", "")
	os.Unsetenv("SUBASTAS_TEST_DSN")

	require.NoError(t, LoadEnv(path, filepath.Join(dir, "missing.env")))
	require.Equal(t, "file.db", os.Getenv("SUBASTAS_TEST_DSN"))
}
