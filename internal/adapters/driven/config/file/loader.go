package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// DefaultFileName is the config file looked up in the working directory
// when no path is given.
const DefaultFileName = "reposcout.toml"

// envOverride maps an environment variable onto a config field.
type envOverride struct {
	name  string
	apply func(cfg *domain.Config, value string) error
}

func setString(field func(*domain.Config) *string) func(*domain.Config, string) error {
	return func(cfg *domain.Config, v string) error {
		*field(cfg) = v
		return nil
	}
}

// envOverrides are applied in order, so later entries win.
var envOverrides = []envOverride{
	{"GITHUB_TOKEN", setString(func(c *domain.Config) *string { return &c.GitHub.Token })},
	{"REPOSCOUT_GITHUB_TOKEN", setString(func(c *domain.Config) *string { return &c.GitHub.Token })},
	{"REPOSCOUT_GITHUB_BASE_URL", setString(func(c *domain.Config) *string { return &c.GitHub.BaseURL })},
	{"REPOSCOUT_SPREADSHEET_ID", setString(func(c *domain.Config) *string { return &c.Sheets.SpreadsheetID })},
	{"REPOSCOUT_READ_SHEET", setString(func(c *domain.Config) *string { return &c.Sheets.ReadSheet })},
	{"REPOSCOUT_READ_RANGE", setString(func(c *domain.Config) *string { return &c.Sheets.ReadRange })},
	{"REPOSCOUT_WRITE_SHEET", setString(func(c *domain.Config) *string { return &c.Sheets.WriteSheet })},
	{"REPOSCOUT_USER_COLUMN", setString(func(c *domain.Config) *string { return &c.Sheets.UserColumn })},
	{"REPOSCOUT_DATA_COLUMN", setString(func(c *domain.Config) *string { return &c.Sheets.DataColumn })},
	{"REPOSCOUT_CREDENTIALS_FILE", setString(func(c *domain.Config) *string { return &c.Sheets.CredentialsFile })},
	{"REPOSCOUT_INGEST_ENDPOINT", setString(func(c *domain.Config) *string { return &c.Ingest.Endpoint })},
	{"REPOSCOUT_INGEST_API_KEY", setString(func(c *domain.Config) *string { return &c.Ingest.APIKey })},
	{"REPOSCOUT_INDEX_URL", setString(func(c *domain.Config) *string { return &c.Ingest.IndexURL })},
	{"REPOSCOUT_FILE_LIMIT", func(c *domain.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: REPOSCOUT_FILE_LIMIT: %v", domain.ErrConfigInvalid, err)
		}
		c.Scan.FileLimit = n
		return nil
	}},
}

// Load builds the run configuration: defaults, then the TOML file at path,
// then environment overrides. An empty path falls back to DefaultFileName
// in the working directory, which may be absent. An explicit path must exist.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file - defaults and environment only.
	default:
		return domain.Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *domain.Config, lookup func(string) (string, bool)) error {
	for _, o := range envOverrides {
		v, ok := lookup(o.name)
		if !ok || v == "" {
			continue
		}
		if err := o.apply(cfg, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteDefault writes the default configuration to path, refusing to
// overwrite an existing file. Secrets are left empty.
func WriteDefault(path string) error {
	if path == "" {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := toml.Marshal(domain.DefaultConfig())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	// Write with restricted permissions
	return os.WriteFile(path, data, 0600)
}
