package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"porterquote/internal/quote"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json5"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	opts := cfg.QuoteOptions()
	require.Equal(t, quote.DefaultOptions(), opts)
}

func TestLoadFileAndLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "porterquote.json5"), `{
		// slower connection
		page_load_timeout: "45s",
		results_timeout: 40,
		selectors: {
			submit: "button.submit",
		},
	}`)
	writeFile(t, filepath.Join(dir, "porterquote.local.json5"), `{
		headless: false,
		chrome_path: "/opt/chrome/chrome",
	}`)

	cfg, err := Load(filepath.Join(dir, "porterquote.json5"))
	require.NoError(t, err)

	opts := cfg.QuoteOptions()
	require.Equal(t, 45*time.Second, opts.PageLoadTimeout)
	require.Equal(t, 40*time.Second, opts.ResultsTimeout)
	require.Equal(t, 15*time.Second, opts.ElementTimeout)
	require.False(t, opts.Headless)
	require.Equal(t, "/opt/chrome/chrome", opts.ExecPath)
	require.Equal(t, "button.submit", opts.Selectors.Submit)
	require.Equal(t, quote.DefaultSelectors().PickupInput, opts.Selectors.PickupInput)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "porterquote.json5"), `{base_url: "https://example.com/"}`)

	t.Setenv("PORTERQUOTE_BASE_URL", "https://porter.example/")
	t.Setenv("PORTERQUOTE_HEADLESS", "false")
	t.Setenv("PORTERQUOTE_ELEMENT_TIMEOUT", "2s")
	t.Setenv("PORTERQUOTE_REMOTE_URL", "ws://127.0.0.1:9222")

	cfg, err := Load(filepath.Join(dir, "porterquote.json5"))
	require.NoError(t, err)

	opts := cfg.QuoteOptions()
	require.Equal(t, "https://porter.example/", opts.BaseUrl)
	require.False(t, opts.Headless)
	require.Equal(t, 2*time.Second, opts.ElementTimeout)
	require.Equal(t, "ws://127.0.0.1:9222", opts.RemoteURL)
}

func TestLoadRejectsInvalid(t *testing.T) {
	table := []struct {
		name     string
		contents string
	}{
		{name: "relative base url", contents: `{base_url: "porter.in"}`},
		{name: "bad duration", contents: `{results_timeout: "soon"}`},
		{name: "negative timeout", contents: `{element_timeout: "-1s"}`},
		{name: "broken json5", contents: `{base_url: `},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "porterquote.json5")
			writeFile(t, path, test.contents)

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestParseDuration(t *testing.T) {
	table := []struct {
		input    string
		expected time.Duration
	}{
		{input: "15s", expected: 15 * time.Second},
		{input: "250ms", expected: 250 * time.Millisecond},
		{input: "20", expected: 20 * time.Second},
		{input: "0.5", expected: 500 * time.Millisecond},
		{input: " 1m ", expected: time.Minute},
	}

	for _, row := range table {
		d, err := parseDuration(row.input)
		require.NoError(t, err)
		require.Equal(t, row.expected, time.Duration(d))
	}
}
