package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// fileConfig is the shared shape of TOML and YAML files.
type fileConfig struct {
	Bin              string                 `toml:"bin" yaml:"bin"`
	Offline          bool                   `toml:"offline" yaml:"offline"`
	NestDependencies *bool                  `toml:"nest_dependencies" yaml:"nest_dependencies"`
	CSSFilters       []string               `toml:"css_filters" yaml:"css_filters"`
	JSFilters        []string               `toml:"js_filters" yaml:"js_filters"`
	Cache            fileCache              `toml:"cache" yaml:"cache"`
	Bundles          map[string]fileBundle  `toml:"bundles" yaml:"bundles"`
	Packages         map[string]filePackage `toml:"packages" yaml:"packages"`
}

type fileCache struct {
	Backend  string `toml:"backend" yaml:"backend"`
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
	TTL      string `toml:"ttl" yaml:"ttl"`
}

type fileBundle struct {
	Directory      string `toml:"directory" yaml:"directory"`
	AssetDirectory string `toml:"asset_directory" yaml:"asset_directory"`
	JSONFile       string `toml:"json_file" yaml:"json_file"`
	Endpoint       string `toml:"endpoint" yaml:"endpoint"`
}

type filePackage struct {
	CSSFilters       []string `toml:"css_filters" yaml:"css_filters"`
	JSFilters        []string `toml:"js_filters" yaml:"js_filters"`
	NestDependencies *bool    `toml:"nest_dependencies" yaml:"nest_dependencies"`
}

func decodeTOML(data []byte) (*Config, error) {
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return fc.toConfig()
}

func decodeYAML(data []byte) (*Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return fc.toConfig()
}

func (fc fileConfig) toConfig() (*Config, error) {
	cfg := Default()
	if fc.Bin != "" {
		cfg.Bin = fc.Bin
	}
	cfg.Offline = fc.Offline
	if fc.NestDependencies != nil {
		cfg.NestDependencies = *fc.NestDependencies
	}
	cfg.CSSFilters = fc.CSSFilters
	cfg.JSFilters = fc.JSFilters

	var err error
	if cfg.Cache, err = fc.Cache.toCache(); err != nil {
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(fc.Bundles)) {
		b := fc.Bundles[name]
		cfg.Bundles = append(cfg.Bundles, Bundle{
			Name:           name,
			Directory:      b.Directory,
			AssetDirectory: b.AssetDirectory,
			JSONFile:       b.JSONFile,
			Endpoint:       b.Endpoint,
		})
	}
	for _, name := range slices.Sorted(maps.Keys(fc.Packages)) {
		p := fc.Packages[name]
		cfg.Packages = append(cfg.Packages, Package{
			Name:             name,
			CSSFilters:       p.CSSFilters,
			JSFilters:        p.JSFilters,
			NestDependencies: p.NestDependencies,
		})
	}
	return cfg, nil
}

func (c fileCache) toCache() (Cache, error) {
	out := Cache{
		Backend:  c.Backend,
		Dir:      c.Dir,
		RedisURL: c.RedisURL,
		Prefix:   c.Prefix,
	}
	if out.Backend == "" {
		out.Backend = CacheFile
	}
	if c.TTL != "" {
		ttl, err := time.ParseDuration(c.TTL)
		if err != nil {
			return Cache{}, fmt.Errorf("cache ttl: %w", err)
		}
		out.TTL = ttl
	}
	return out, nil
}

// hclConfig mirrors fileConfig with labelled blocks for bundles and packages.
type hclConfig struct {
	Bin              string       `hcl:"bin,optional"`
	Offline          bool         `hcl:"offline,optional"`
	NestDependencies *bool        `hcl:"nest_dependencies,optional"`
	CSSFilters       []string     `hcl:"css_filters,optional"`
	JSFilters        []string     `hcl:"js_filters,optional"`
	Cache            *hclCache    `hcl:"cache,block"`
	Bundles          []hclBundle  `hcl:"bundle,block"`
	Packages         []hclPackage `hcl:"package,block"`
}

type hclCache struct {
	Backend  string `hcl:"backend,optional"`
	Dir      string `hcl:"dir,optional"`
	RedisURL string `hcl:"redis_url,optional"`
	Prefix   string `hcl:"prefix,optional"`
	TTL      string `hcl:"ttl,optional"`
}

type hclBundle struct {
	Name           string `hcl:"name,label"`
	Directory      string `hcl:"directory"`
	AssetDirectory string `hcl:"asset_directory,optional"`
	JSONFile       string `hcl:"json_file,optional"`
	Endpoint       string `hcl:"endpoint,optional"`
}

type hclPackage struct {
	Name             string   `hcl:"name,label"`
	CSSFilters       []string `hcl:"css_filters,optional"`
	JSFilters        []string `hcl:"js_filters,optional"`
	NestDependencies *bool    `hcl:"nest_dependencies,optional"`
}

func decodeHCL(data []byte, filename string) (*Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var hc hclConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &hc); diags.HasErrors() {
		return nil, diags
	}

	cfg := Default()
	if hc.Bin != "" {
		cfg.Bin = hc.Bin
	}
	cfg.Offline = hc.Offline
	if hc.NestDependencies != nil {
		cfg.NestDependencies = *hc.NestDependencies
	}
	cfg.CSSFilters = hc.CSSFilters
	cfg.JSFilters = hc.JSFilters

	if hc.Cache != nil {
		c, err := fileCache(*hc.Cache).toCache()
		if err != nil {
			return nil, err
		}
		cfg.Cache = c
	}

	for _, b := range hc.Bundles {
		cfg.Bundles = append(cfg.Bundles, Bundle(b))
	}
	for _, p := range hc.Packages {
		cfg.Packages = append(cfg.Packages, Package(p))
	}
	return cfg, nil
}
