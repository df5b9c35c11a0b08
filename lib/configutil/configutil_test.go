package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl  string `json:"base_url"`
	Headless *bool  `json:"headless"`
	Timeout  int    `json:"timeout"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "porterquote.json5"), `{
		// comments are allowed
		base_url: "https://porter.in/",
		timeout: 15,
	}`)
	writeFile(t, filepath.Join(dir, "porterquote.local.json5"), `{
		headless: false,
		timeout: 30,
	}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "porterquote.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://porter.in/", cfg.BaseUrl)
	require.NotNil(t, cfg.Headless)
	require.False(t, *cfg.Headless)
	require.Equal(t, 30, cfg.Timeout)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "porterquote.local.json5"), `{timeout: 5}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "porterquote.json5"))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Timeout)
	require.Nil(t, cfg.Headless)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "porterquote.json5"), `{timeout: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "porterquote.json5"))
	require.ErrorContains(t, err, "parse")
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))
	writeFile(t, filepath.Join(root, "telemetry.json5"), `{timeout: 7}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer func() {
		require.NoError(t, os.Chdir(wd))
	}()

	cfg, err := ReadRecursively[testConfig]("telemetry.json5")
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Timeout)
}

func TestLayerPaths(t *testing.T) {
	table := []struct {
		input    string
		expected []string
	}{
		{input: "config.json5", expected: []string{"config.json5", "config.local.json5"}},
		{input: "dir/a.b.json", expected: []string{"dir/a.b.json", "dir/a.b.local.json"}},
		{input: "noext", expected: []string{"noext", "noext.local"}},
	}

	for _, row := range table {
		require.Equal(t, row.expected, LayerPaths(row.input), row.input)
	}
}
