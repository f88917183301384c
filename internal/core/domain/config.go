package domain

import (
	"fmt"
	"strings"
	"time"
)

// Config is the immutable run configuration threaded into every component.
type Config struct {
	GitHub GitHubConfig `toml:"github"`
	Scan   ScanConfig   `toml:"scan"`
	Search SearchConfig `toml:"search"`
	Sheets SheetsConfig `toml:"sheets"`
	Ingest IngestConfig `toml:"ingest"`
	Output OutputConfig `toml:"output"`
}

// GitHubConfig configures the GitHub API client.
type GitHubConfig struct {
	Token     string `toml:"token"`
	UserAgent string `toml:"user_agent"`
	// BaseURL overrides the API endpoint (GitHub Enterprise, tests).
	BaseURL string `toml:"base_url"`
	// ProactiveRate throttles requests per second before each call. 0 disables it.
	ProactiveRate float64 `toml:"proactive_rate"`
}

// ScanConfig configures tree scanning.
type ScanConfig struct {
	Keywords   []string `toml:"keywords"`
	Extensions []string `toml:"extensions"`
	// FileLimit caps the files scanned per repository. 0 means no cap.
	FileLimit int `toml:"file_limit"`
	// StrictFiles aborts a repository scan on the first file failure.
	StrictFiles bool `toml:"strict_files"`
	// SkipUnmatchedExpanded drops repositories expanded from a user cell
	// that matched no keyword.
	SkipUnmatchedExpanded bool `toml:"skip_unmatched_expanded"`
}

// FileTypesLabel returns the allow-list as written into records.
func (c ScanConfig) FileTypesLabel() string {
	return strings.Join(c.Extensions, ", ")
}

// SearchConfig configures code-search discovery.
type SearchConfig struct {
	Queries []string `toml:"queries"`
	Exclude []string `toml:"exclude"`
	Origin  string   `toml:"origin"`
}

// ColumnRule renames any header containing one of Match to Rename.
type ColumnRule struct {
	Match  []string `toml:"match"`
	Rename string   `toml:"rename"`
}

// SheetsConfig configures the spreadsheet source and sink.
type SheetsConfig struct {
	CredentialsFile string       `toml:"credentials_file"`
	SpreadsheetID   string       `toml:"spreadsheet_id"`
	ReadSheet       string       `toml:"read_sheet"`
	ReadRange       string       `toml:"read_range"`
	WriteSheet      string       `toml:"write_sheet"`
	UserColumn      string       `toml:"user_column"`
	DataColumn      string       `toml:"data_column"`
	StartRow        int          `toml:"start_row"`
	InputColumn     string       `toml:"input_column"`
	EnrichFields    []string     `toml:"enrich_fields"`
	ColumnRules     []ColumnRule `toml:"column_rules"`
}

// IngestConfig configures the search-index sink.
type IngestConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	IndexURL string `toml:"index_url"`
	Index    string `toml:"index"`
	// TimeoutSeconds bounds each request to the index and ingest endpoint.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns the request timeout.
func (c IngestConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OutputConfig configures the persisted results artifact.
type OutputConfig struct {
	ResultsFile string `toml:"results_file"`
}

// DefaultKeywords is the keyword vocabulary scanned for.
var DefaultKeywords = []string{
	"ephemeral-rollups-sdk",
	"#[ephemeral]",
	"#[commit]",
	"#[delegate]",
	"delegate_account",
	"undelegate_account",
	"commit_accounts",
	"commit_and_undelegate_accounts",
}

// DefaultExtensions is the file-extension allow-list.
var DefaultExtensions = []string{".toml", ".json", ".rs", ".ts"}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		GitHub: GitHubConfig{
			UserAgent: "reposcout",
		},
		Scan: ScanConfig{
			Keywords:              append([]string(nil), DefaultKeywords...),
			Extensions:            append([]string(nil), DefaultExtensions...),
			FileLimit:             100,
			SkipUnmatchedExpanded: true,
		},
		Search: SearchConfig{
			Queries: []string{
				`"ephemeral-rollups-sdk" filename:package.json`,
				`"ephemeral-rollups-sdk" filename:Cargo.toml`,
			},
			Exclude: []string{"magicblock-labs"},
			Origin:  "code-search",
		},
		Sheets: SheetsConfig{
			CredentialsFile: "service-account.json",
			UserColumn:      "A",
			DataColumn:      "C",
			StartRow:        2,
			InputColumn:     "snapshot_url",
			EnrichFields: []string{
				"snapshot_url", "presentation_link", "technical_link",
				"files_processed", "location", "tracks", "contact",
			},
			ColumnRules: []ColumnRule{
				{Match: []string{"gh", "github", "repo"}, Rename: "snapshot_url"},
				{Match: []string{"presentation"}, Rename: "presentation_link"},
				{Match: []string{"website"}, Rename: "website_link"},
				{Match: []string{"technical", "demo"}, Rename: "technical_link"},
				{Match: []string{"files_processed"}, Rename: "files_processed"},
				{Match: []string{"location", "country"}, Rename: "location"},
				{Match: []string{"track"}, Rename: "tracks"},
				{Match: []string{"contact", "team", "twitter"}, Rename: "contact"},
				{Match: []string{"wallet", "solana"}, Rename: "wallet"},
				{Match: []string{"twitter", "social link"}, Rename: "social_link"},
			},
		},
		Ingest: IngestConfig{
			IndexURL:       "http://localhost:9200",
			Index:          "github-repos",
			TimeoutSeconds: 10,
		},
		Output: OutputConfig{
			ResultsFile: "results.json",
		},
	}
}

// ValidateScan checks the values every run needs.
func (c Config) ValidateScan() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("%w: github token is required", ErrConfigInvalid)
	}
	if len(c.Scan.Keywords) == 0 {
		return fmt.Errorf("%w: scan.keywords must not be empty", ErrConfigInvalid)
	}
	seen := make(map[string]struct{}, len(c.Scan.Keywords))
	for _, k := range c.Scan.Keywords {
		key := strings.ToLower(k)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: scan.keywords contains %q more than once", ErrConfigInvalid, k)
		}
		seen[key] = struct{}{}
	}
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("%w: scan.extensions must not be empty", ErrConfigInvalid)
	}
	if c.Scan.FileLimit < 0 {
		return fmt.Errorf("%w: scan.file_limit must not be negative", ErrConfigInvalid)
	}
	return nil
}

// ValidateSinks checks the values needed to write to real sinks.
func (c Config) ValidateSinks() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("%w: sheets.spreadsheet_id is required", ErrConfigInvalid)
	}
	if c.Sheets.WriteSheet == "" {
		return fmt.Errorf("%w: sheets.write_sheet is required", ErrConfigInvalid)
	}
	if c.Sheets.StartRow < 1 {
		return fmt.Errorf("%w: sheets.start_row must be at least 1", ErrConfigInvalid)
	}
	if c.Ingest.Endpoint == "" {
		return fmt.Errorf("%w: ingest.endpoint is required", ErrConfigInvalid)
	}
	return nil
}

// ValidateSheetInput checks the values needed to read inputs from the spreadsheet.
func (c Config) ValidateSheetInput() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("%w: sheets.spreadsheet_id is required", ErrConfigInvalid)
	}
	if c.Sheets.ReadSheet == "" || c.Sheets.ReadRange == "" {
		return fmt.Errorf("%w: sheets.read_sheet and sheets.read_range are required", ErrConfigInvalid)
	}
	return nil
}
