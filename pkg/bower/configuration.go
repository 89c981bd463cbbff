package bower

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	DefaultJSONFile       = "bower.json" // Default manifest filename
	DefaultAssetDirectory = "components" // Default install directory, relative to Directory
	rcFile                = ".bowerrc"
)

// Configuration describes a single bundle's Bower setup.
type Configuration struct {
	Name           string // Bundle name (used for logging and error messages)
	Directory      string // Directory containing the manifest
	AssetDirectory string // Directory Bower installs components into
	JSONFile       string // Manifest filename (default: bower.json)
	Endpoint       string // Registry endpoint (optional)
}

// WithDefaults returns a copy of the configuration with empty fields filled in.
func (c Configuration) WithDefaults() Configuration {
	cfg := c
	if cfg.JSONFile == "" {
		cfg.JSONFile = DefaultJSONFile
	}
	if cfg.AssetDirectory == "" {
		cfg.AssetDirectory = filepath.Join(cfg.Directory, DefaultAssetDirectory)
	}
	if cfg.Name == "" {
		cfg.Name = filepath.Base(cfg.Directory)
	}
	return cfg
}

// ManifestPath returns the path of the bundle's manifest.
func (c Configuration) ManifestPath() string {
	jsonFile := c.JSONFile
	if jsonFile == "" {
		jsonFile = DefaultJSONFile
	}
	return filepath.Join(c.Directory, jsonFile)
}

// rc is the subset of .bowerrc the bundle controls.
type rc struct {
	Directory string `json:"directory"`
	JSON      string `json:"json,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
}

// WriteRC writes a .bowerrc into Directory so that the bower binary installs
// components into AssetDirectory. The directory entry is relative when the
// asset directory lives below Directory.
func (c Configuration) WriteRC() error {
	cfg := c.WithDefaults()
	dir := cfg.AssetDirectory
	if rel, err := filepath.Rel(cfg.Directory, dir); err == nil && !filepath.IsAbs(rel) {
		dir = rel
	}

	data, err := json.MarshalIndent(rc{
		Directory: filepath.ToSlash(dir),
		JSON:      cfg.JSONFile,
		Endpoint:  cfg.Endpoint,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.Directory, rcFile), data, 0644)
}
