package formula

import (
	"fmt"
	"slices"
)

// NestMode is a per-package override of the builder's nesting default.
type NestMode int

const (
	NestInherit NestMode = iota // Use the builder default
	NestAlways                  // Always nest dependency references
	NestNever                   // Never nest dependency references
)

// NestModeFromBool maps an optional boolean to a NestMode; nil inherits.
func NestModeFromBool(b *bool) NestMode {
	switch {
	case b == nil:
		return NestInherit
	case *b:
		return NestAlways
	default:
		return NestNever
	}
}

// Resolve returns the effective nest flag given the builder default.
func (m NestMode) Resolve(def bool) bool {
	switch m {
	case NestAlways:
		return true
	case NestNever:
		return false
	default:
		return def
	}
}

func (m NestMode) String() string {
	switch m {
	case NestAlways:
		return "always"
	case NestNever:
		return "never"
	default:
		return "inherit"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m NestMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *NestMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "inherit":
		*m = NestInherit
	case "always":
		*m = NestAlways
	case "never":
		*m = NestNever
	default:
		return fmt.Errorf("unknown nest mode %q", text)
	}
	return nil
}

// PackageResource overrides filters and nesting for one package. Name is the
// translated package name.
type PackageResource struct {
	Name       string   `json:"name"`
	CSSFilters []string `json:"css_filters"`
	JSFilters  []string `json:"js_filters"`
	Nest       NestMode `json:"nest"`
}

// NewPackageResource creates an override with no filters that inherits the
// nesting default.
func NewPackageResource(name string) *PackageResource {
	return &PackageResource{Name: name}
}

func (r *PackageResource) clone() *PackageResource {
	return &PackageResource{
		Name:       r.Name,
		CSSFilters: slices.Clone(r.CSSFilters),
		JSFilters:  slices.Clone(r.JSFilters),
		Nest:       r.Nest,
	}
}
