package formula

import (
	"maps"
	"slices"
)

// Suffixes appended to translated package names.
const (
	SuffixCSS = "_css"
	SuffixJS  = "_js"
)

// Formula is a named file list with a filter chain.
type Formula struct {
	Name    string         `json:"-"`
	Files   []string       `json:"inputs"`
	Filters []string       `json:"filters"`
	Options map[string]any `json:"options"`
}

// Formulae maps formula names to formulae.
type Formulae map[string]Formula

// Names returns the formula names in sorted order.
func (f Formulae) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

// CSSName returns the stylesheet formula name for a translated package name.
func CSSName(name string) string { return name + SuffixCSS }

// JSName returns the script formula name for a translated package name.
func JSName(name string) string { return name + SuffixJS }

// Reference returns the asset reference to another formula ("@name").
func Reference(formulaName string) string { return "@" + formulaName }

func newFormula(name string, files, filters []string) Formula {
	return Formula{
		Name:    name,
		Files:   files,
		Filters: filters,
		Options: map[string]any{},
	}
}
