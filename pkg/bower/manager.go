package bower

import (
	"github.com/matzehuels/bowerassets/pkg/errors"
)

// Manager holds the configured bundles in registration order.
// It is not safe for concurrent modification; register bundles at startup.
type Manager struct {
	bundles []*Configuration
	byName  map[string]*Configuration
}

// NewManager creates an empty bundle registry.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]*Configuration)}
}

// AddBundle registers a bundle under name. Defaults are applied to cfg and
// registering the same name twice is an error.
func (m *Manager) AddBundle(name string, cfg Configuration) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "bundle name cannot be empty")
	}
	if cfg.Directory == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "bundle %q has no directory", name)
	}
	if _, ok := m.byName[name]; ok {
		return errors.New(errors.ErrCodeInvalidConfig, "bundle %q registered twice", name)
	}

	cfg.Name = name
	c := cfg.WithDefaults()
	m.bundles = append(m.bundles, &c)
	m.byName[name] = &c
	return nil
}

// Bundles returns the registered bundles in registration order.
func (m *Manager) Bundles() []*Configuration {
	out := make([]*Configuration, len(m.bundles))
	copy(out, m.bundles)
	return out
}

// Bundle looks up a bundle by name.
func (m *Manager) Bundle(name string) (*Configuration, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// Select returns the named bundles in the given order, or every bundle when
// names is empty.
func (m *Manager) Select(names ...string) ([]*Configuration, error) {
	if len(names) == 0 {
		return m.Bundles(), nil
	}
	out := make([]*Configuration, 0, len(names))
	for _, name := range names {
		c, ok := m.byName[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeBundleNotFound, "unknown bundle %q", name)
		}
		out = append(out, c)
	}
	return out, nil
}
