package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"porterquote/internal/quote"
	"porterquote/lib/configutil"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultPath is where the CLI looks for its config file.
const DefaultPath = "porterquote.json5"

type Config struct {
	BaseUrl string `json:"base_url" envconfig:"PORTERQUOTE_BASE_URL"`
	// Headless defaults to true when unset.
	Headless        *bool    `json:"headless" envconfig:"PORTERQUOTE_HEADLESS"`
	PageLoadTimeout Duration `json:"page_load_timeout" envconfig:"PORTERQUOTE_PAGE_LOAD_TIMEOUT"`
	ElementTimeout  Duration `json:"element_timeout" envconfig:"PORTERQUOTE_ELEMENT_TIMEOUT"`
	ResultsTimeout  Duration `json:"results_timeout" envconfig:"PORTERQUOTE_RESULTS_TIMEOUT"`
	PollInterval    Duration `json:"poll_interval" envconfig:"PORTERQUOTE_POLL_INTERVAL"`
	UserAgent       string   `json:"user_agent" envconfig:"PORTERQUOTE_USER_AGENT"`
	ChromePath      string   `json:"chrome_path" envconfig:"PORTERQUOTE_CHROME_PATH"`
	RemoteURL       string   `json:"remote_url" envconfig:"PORTERQUOTE_REMOTE_URL"`
	// DumpDir receives the page html of failed calls when set.
	DumpDir   string          `json:"dump_dir" envconfig:"PORTERQUOTE_DUMP_DIR"`
	Selectors quote.Selectors `json:"selectors" ignored:"true"`
}

// Default is the config used when no file or environment overrides exist.
func Default() Config {
	opts := quote.DefaultOptions()
	return Config{
		BaseUrl:         opts.BaseUrl,
		PageLoadTimeout: Duration(opts.PageLoadTimeout),
		ElementTimeout:  Duration(opts.ElementTimeout),
		ResultsTimeout:  Duration(opts.ResultsTimeout),
		PollInterval:    Duration(opts.PollInterval),
		UserAgent:       opts.UserAgent,
		Selectors:       opts.Selectors,
	}
}

// Load layers, from lowest to highest priority: defaults, the file at path
// (with its .local sibling), a .env file in the working directory and
// PORTERQUOTE_* environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := configutil.ReadConfig[Config](path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		if err == nil {
			err = mergo.Merge(&cfg, file, mergo.WithOverride)
			if err != nil {
				return Config{}, fmt.Errorf("merge %s: %w", path, err)
			}
		}
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	err = envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseUrl)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute url", c.BaseUrl)
	}
	durations := []struct {
		name  string
		value Duration
	}{
		{name: "page_load_timeout", value: c.PageLoadTimeout},
		{name: "element_timeout", value: c.ElementTimeout},
		{name: "results_timeout", value: c.ResultsTimeout},
		{name: "poll_interval", value: c.PollInterval},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	return nil
}

// QuoteOptions converts the config into client options.
func (c Config) QuoteOptions() quote.Options {
	headless := true
	if c.Headless != nil {
		headless = *c.Headless
	}
	return quote.Options{
		BaseUrl:         c.BaseUrl,
		Headless:        headless,
		PageLoadTimeout: time.Duration(c.PageLoadTimeout),
		ElementTimeout:  time.Duration(c.ElementTimeout),
		ResultsTimeout:  time.Duration(c.ResultsTimeout),
		PollInterval:    time.Duration(c.PollInterval),
		UserAgent:       c.UserAgent,
		ExecPath:        c.ChromePath,
		RemoteURL:       c.RemoteURL,
		Selectors:       c.Selectors,
	}
}
