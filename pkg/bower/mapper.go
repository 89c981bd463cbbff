package bower

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bowerassets/pkg/errors"
)

// DependencyMapper turns the output of "bower list --json" into packages.
type DependencyMapper struct{}

// NewDependencyMapper creates a mapper.
func NewDependencyMapper() *DependencyMapper {
	return &DependencyMapper{}
}

// Map parses a bower listing and returns every package below the project
// root, in pre-order of first appearance. Packages that appear under several
// dependents are returned once and shared. An unresolved entry is replaced
// by a resolved entry of the same name wherever that appears.
//
// Files listed in "main" are sorted into styles (.css) and scripts (.js) by
// extension; the explicit "styles" and "scripts" properties are appended after
// them. Relative paths are resolved against the package's install directory.
func (m *DependencyMapper) Map(data []byte, cfg Configuration) ([]*Package, error) {
	var root listNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse dependency listing for %s", cfg.Name)
	}

	cfg = cfg.WithDefaults()
	b := &mappingBuilder{cfg: cfg, seen: make(map[string]*Package), placeholders: make(map[string]bool)}
	for _, dep := range root.Dependencies {
		b.visit(dep.Name, dep.Node)
	}
	return b.order, nil
}

type mappingBuilder struct {
	cfg   Configuration
	seen  map[string]*Package
	order []*Package
	// placeholders holds packages first seen as unresolved entries. A later
	// resolved entry of the same name fills them in place.
	placeholders map[string]bool
}

func (b *mappingBuilder) visit(name string, node *listNode) *Package {
	if p, ok := b.seen[name]; ok {
		if b.placeholders[name] && !node.Missing {
			delete(b.placeholders, name)
			b.fill(p, node)
		}
		return p
	}

	p := &Package{Name: name}
	b.seen[name] = p
	b.order = append(b.order, p)
	if node.Missing {
		b.placeholders[name] = true
	}
	b.fill(p, node)
	return p
}

// fill sets everything but the name of p from node. Shared pointers to p
// stay valid.
func (b *mappingBuilder) fill(p *Package, node *listNode) {
	dir := node.CanonicalDir
	if dir == "" {
		dir = filepath.Join(b.cfg.AssetDirectory, p.Name)
	}
	p.Version = node.Meta.Version
	p.Dir = dir
	p.Styles, p.Scripts, p.Dependencies = nil, nil, nil

	for _, file := range node.Meta.Main {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".css":
			p.Styles = append(p.Styles, resolvePath(dir, file))
		case ".js":
			p.Scripts = append(p.Scripts, resolvePath(dir, file))
		}
	}
	for _, file := range node.Meta.Styles {
		p.Styles = append(p.Styles, resolvePath(dir, file))
	}
	for _, file := range node.Meta.Scripts {
		p.Scripts = append(p.Scripts, resolvePath(dir, file))
	}

	for _, dep := range node.Dependencies {
		p.Dependencies = append(p.Dependencies, b.visit(dep.Name, dep.Node))
	}
}

func resolvePath(dir, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(dir, filepath.FromSlash(file))
}

// listNode is one entry of the bower listing.
type listNode struct {
	CanonicalDir string         `json:"canonicalDir"`
	Meta         packageMeta    `json:"pkgMeta"`
	Missing      bool           `json:"missing"`
	Dependencies dependencyList `json:"dependencies"`
}

type packageMeta struct {
	Name    string     `json:"name"`
	Version string     `json:"version"`
	Main    stringList `json:"main"`
	Styles  stringList `json:"styles"`
	Scripts stringList `json:"scripts"`
}

// stringList accepts either a single string or an array of strings.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

type namedDependency struct {
	Name string
	Node *listNode
}

// dependencyList decodes a JSON object while keeping its key order, which
// encoding/json maps would lose.
type dependencyList []namedDependency

func (l *dependencyList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("dependencies: expected object, got %v", tok)
	}

	var out dependencyList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("dependencies: expected key, got %v", tok)
		}

		// Older bower versions print unresolved dependencies as plain strings.
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		node := &listNode{}
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
			if err := json.Unmarshal(raw, node); err != nil {
				return fmt.Errorf("dependency %s: %w", name, err)
			}
		} else {
			node.Missing = true
		}
		out = append(out, namedDependency{Name: name, Node: node})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}
