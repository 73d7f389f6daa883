// =============================================================================
// QBXML to CSV Export - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. Everything lives in a single YAML file (config.yaml by
// default) covering three areas:
//
//   1. Connection settings: how the tool identifies itself to QuickBooks and
//      which company file it opens.
//   2. Output settings: where files go, which format, how they are named.
//   3. Query settings: iterator page size and the ship-to extraction strategy.
//
// Defaults are applied after unmarshalling, so an empty or missing file yields
// a fully usable configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// SHIP-TO STRATEGIES
// =============================================================================

// The customer list query supports two ship-to extraction strategies that
// produce different output shapes. They are deliberately kept separate; see
// the shipto entity adapters for the behavioral differences.
const (
	// ShipToDirect queries the full CustomerRet and reads the repeating
	// ShipToAddress elements directly beneath it. Wide column set, degenerate
	// blocks (no label, Addr1, or City) are dropped.
	ShipToDirect = "direct"

	// ShipToList asks QuickBooks for FullName + ShipToAddressList only and
	// reads the nested list. Two-column combined-string output, no filter.
	ShipToList = "list"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration loaded from config.yaml.
type Config struct {
	// =========================================================================
	// CONNECTION SETTINGS
	// =========================================================================

	// AppName is the application name QuickBooks displays when asking the
	// user to authorize the connection.
	// Default: "QBXML CSV Exporter"
	AppName string `yaml:"app_name"`

	// CompanyFile is the path to the QuickBooks company file to open.
	// Leave empty to use the company file currently open in QuickBooks.
	CompanyFile string `yaml:"company_file"`

	// OpenMode is the BeginSession file-open mode passed to the request
	// processor. 2 is qbFileOpenDoNotCare (accept whatever mode the file is
	// already open in).
	// Default: 2
	OpenMode int `yaml:"open_mode"`

	// QBXMLVersion is the protocol version declared in the qbxml processing
	// instruction of every request.
	// Default: "16.0"
	QBXMLVersion string `yaml:"qbxml_version"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where export files are written. It is
	// created if it does not exist.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FileNames controls how output files are named. Each format string may
	// use the placeholders {type}, {types}, {ref}, {year}, {timestamp},
	// {uuid}, and {ext}.
	FileNames FileNameConfig `yaml:"file_names"`

	// KeepEmptyColumns disables the ship-to export behavior of dropping
	// columns that are empty across every record.
	// Default: false (empty columns are dropped, direct strategy only)
	KeepEmptyColumns bool `yaml:"keep_empty_columns"`

	// =========================================================================
	// QUERY SETTINGS
	// =========================================================================

	// PageSize caps the number of records returned per iterator batch on
	// list-style queries. This is a tunable, not a protocol requirement.
	// Default: 100
	PageSize int `yaml:"page_size"`

	// ShipToStrategy selects the customer ship-to extraction strategy:
	// "direct" or "list".
	// Default: "direct"
	ShipToStrategy string `yaml:"shipto_strategy"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// The --verbose flag forces "debug" regardless of this setting.
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// FileNameConfig holds the output file name format strings.
type FileNameConfig struct {
	// SingleRef names the per-identifier output of a by-reference export.
	// Default: "{type}_{ref}.{ext}"
	SingleRef string `yaml:"single_ref"`

	// ByYear names the combined output of a date-range export.
	// Default: "{types}_from_{year}.{ext}"
	ByYear string `yaml:"by_year"`

	// ShipTo names the combined output of a ship-to export.
	// Default: "shipto_addresses_{timestamp}.{ext}"
	ShipTo string `yaml:"shipto"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given YAML file, applies defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.AppName == "" {
		cfg.AppName = "QBXML CSV Exporter"
	}
	if cfg.OpenMode == 0 {
		cfg.OpenMode = 2
	}
	if cfg.QBXMLVersion == "" {
		cfg.QBXMLVersion = "16.0"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.FileNames.SingleRef == "" {
		cfg.FileNames.SingleRef = "{type}_{ref}.{ext}"
	}
	if cfg.FileNames.ByYear == "" {
		cfg.FileNames.ByYear = "{types}_from_{year}.{ext}"
	}
	if cfg.FileNames.ShipTo == "" {
		cfg.FileNames.ShipTo = "shipto_addresses_{timestamp}.{ext}"
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 100
	}
	if cfg.ShipToStrategy == "" {
		cfg.ShipToStrategy = ShipToDirect
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate rejects configurations the rest of the pipeline cannot honor.
func validate(cfg *Config) error {
	if cfg.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.ShipToStrategy != ShipToDirect && cfg.ShipToStrategy != ShipToList {
		return fmt.Errorf("shipto_strategy must be %q or %q, got %q",
			ShipToDirect, ShipToList, cfg.ShipToStrategy)
	}
	return nil
}
