// Package config loads and persists the watermap configuration file.
// Configuration is stored as TOML at ~/.watermap/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/openhydro/watermap-cli/internal/domain"
)

// DefaultDirName is the per-user configuration directory.
const DefaultDirName = ".watermap"

// Config holds everything both stages need: dataset identifiers and the
// region query for extraction, and local paths plus rendering inputs for
// analysis.
type Config struct {
	// Project is the Google Cloud project used for Earth Engine requests.
	Project string `toml:"project"`

	Region  RegionConfig  `toml:"region"`
	Dataset DatasetConfig `toml:"dataset"`
	Export  ExportConfig  `toml:"export"`
	Paths   PathsConfig   `toml:"paths"`
	Limits  LimitsConfig  `toml:"limits"`
}

// RegionConfig selects the region of interest.
type RegionConfig struct {
	// HUC10 is the USGS watershed boundary code to look up.
	HUC10 string `toml:"huc10"`

	// Fallback is used when the HUC10 code matches no watershed.
	Fallback domain.BoundingBox `toml:"fallback"`
}

// DatasetConfig names the remote assets.
type DatasetConfig struct {
	// WatershedAsset is the boundary feature collection asset.
	WatershedAsset string `toml:"watershed_asset"`

	// WaterAsset is the pre-classified surface water image asset.
	WaterAsset string `toml:"water_asset"`

	// Band is the classification band to select from WaterAsset.
	Band string `toml:"band"`
}

// ExportConfig controls the Drive export jobs.
type ExportConfig struct {
	// ScaleMeters is the export resolution in metres per pixel.
	ScaleMeters float64 `toml:"scale_meters"`

	// MaxPixels caps the export size on the service side.
	MaxPixels int64 `toml:"max_pixels"`

	// DriveFolder is the Drive folder exports are written to. Empty means
	// the Drive root.
	DriveFolder string `toml:"drive_folder"`

	// BoundaryPrefix and RasterPrefix are the export filename prefixes.
	BoundaryPrefix string `toml:"boundary_prefix"`
	RasterPrefix   string `toml:"raster_prefix"`
}

// PathsConfig holds local directories.
type PathsConfig struct {
	// DownloadDir receives files fetched from Drive.
	DownloadDir string `toml:"download_dir"`

	// OutputDir receives rendered maps and charts.
	OutputDir string `toml:"output_dir"`

	// DataDir holds the job database. Empty means ~/.watermap/data, so
	// alternate configs can keep their job ledgers isolated.
	DataDir string `toml:"data_dir"`
}

// LimitsConfig tunes client-side rate limiting.
type LimitsConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Default returns the configuration the original workflow used: the JRC
// 2020 yearly history over a HUC10 watershed near Denver, exported at
// 30 m.
func Default() *Config {
	return &Config{
		Region: RegionConfig{
			HUC10:    "1019000101",
			Fallback: domain.BoundingBox{West: -105.5, South: 39.5, East: -104.5, North: 40.5},
		},
		Dataset: DatasetConfig{
			WatershedAsset: "USGS/WBD/2017/HUC10",
			WaterAsset:     "JRC/GSW1_4/YearlyHistory/2020",
			Band:           "waterClass",
		},
		Export: ExportConfig{
			ScaleMeters:    30,
			MaxPixels:      1e9,
			BoundaryPrefix: "watershed_boundary_huc10",
			RasterPrefix:   "water_class_raster",
		},
		Paths: PathsConfig{
			DownloadDir: "downloads",
			OutputDir:   "output",
		},
		Limits: LimitsConfig{
			RequestsPerSecond: 5.0,
			Burst:             10,
		},
	}
}

// DefaultPath returns the default config file path under the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName, "config.toml"), nil
}

// Load reads and validates a config file. Missing keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
// The file is written with restricted permissions like the rest of the
// watermap state.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Validate checks the fields both stages depend on.
func (c *Config) Validate() error {
	if c.Region.HUC10 == "" && !c.Region.Fallback.Valid() {
		return fmt.Errorf("%w: region requires a huc10 code or a valid fallback box", domain.ErrInvalidInput)
	}
	if c.Dataset.WatershedAsset == "" {
		return fmt.Errorf("%w: dataset.watershed_asset is required", domain.ErrInvalidInput)
	}
	if c.Dataset.WaterAsset == "" {
		return fmt.Errorf("%w: dataset.water_asset is required", domain.ErrInvalidInput)
	}
	if c.Dataset.Band == "" {
		return fmt.Errorf("%w: dataset.band is required", domain.ErrInvalidInput)
	}
	if c.Export.ScaleMeters <= 0 {
		return fmt.Errorf("%w: export.scale_meters must be positive", domain.ErrInvalidInput)
	}
	if c.Export.MaxPixels <= 0 {
		return fmt.Errorf("%w: export.max_pixels must be positive", domain.ErrInvalidInput)
	}
	if c.Limits.RequestsPerSecond <= 0 || c.Limits.Burst <= 0 {
		return fmt.Errorf("%w: limits must be positive", domain.ErrInvalidInput)
	}
	return nil
}
