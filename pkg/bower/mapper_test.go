package bower

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/bowerassets/pkg/errors"
)

func loadListing(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "list.json"))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDependencyMapper_Map(t *testing.T) {
	assets := filepath.Join(t.TempDir(), "components")
	cfg := Configuration{Name: "DemoBundle", Directory: filepath.Dir(assets), AssetDirectory: assets}

	pkgs, err := NewDependencyMapper().Map(loadListing(t), cfg)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	want := []string{"other_package", "package", "invalid-package.name", "unresolved"}
	if !slices.Equal(names, want) {
		t.Fatalf("package order = %v, want %v", names, want)
	}

	other := pkgs[0]
	otherDir := filepath.Join(assets, "other_package")
	wantScripts := []string{filepath.Join(otherDir, "main.js"), filepath.Join(otherDir, "customized.js")}
	if !slices.Equal(other.Scripts, wantScripts) {
		t.Errorf("Scripts = %v, want %v", other.Scripts, wantScripts)
	}
	wantStyles := []string{
		filepath.Join(otherDir, "main.css"),
		filepath.Join(otherDir, "styles.css"),
		filepath.Join(otherDir, "customized.css"),
	}
	if !slices.Equal(other.Styles, wantStyles) {
		t.Errorf("Styles = %v, want %v", other.Styles, wantStyles)
	}
	if other.Version != "1.2.0" {
		t.Errorf("Version = %q, want %q", other.Version, "1.2.0")
	}
	if got := other.DependencyNames(); !slices.Equal(got, []string{"package"}) {
		t.Errorf("DependencyNames = %v, want [package]", got)
	}

	pkg := pkgs[1]
	if len(pkg.Styles) != 0 {
		t.Errorf("package Styles = %v, want empty", pkg.Styles)
	}
	if want := []string{filepath.Join(assets, "package", "package.js")}; !slices.Equal(pkg.Scripts, want) {
		t.Errorf("package Scripts = %v, want %v", pkg.Scripts, want)
	}
}

func TestDependencyMapper_SharesPackages(t *testing.T) {
	pkgs, err := NewDependencyMapper().Map(loadListing(t), Configuration{Directory: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	other, invalid := pkgs[0], pkgs[2]
	if other.Dependencies[0] != invalid.Dependencies[0] {
		t.Error("shared dependency should be the same *Package")
	}
	if got := invalid.DependencyNames(); !slices.Equal(got, []string{"package", "unresolved"}) {
		t.Errorf("DependencyNames = %v, want [package unresolved]", got)
	}
}

func TestDependencyMapper_PreservesDeclarationOrder(t *testing.T) {
	listing := `{"dependencies": {
		"app": {"pkgMeta": {"name": "app"}, "dependencies": {
			"zeta": {"pkgMeta": {"name": "zeta"}},
			"alpha": {"pkgMeta": {"name": "alpha"}},
			"mid": {"pkgMeta": {"name": "mid"}}
		}}
	}}`

	pkgs, err := NewDependencyMapper().Map([]byte(listing), Configuration{Directory: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if got := pkgs[0].DependencyNames(); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("DependencyNames = %v, want [zeta alpha mid]", got)
	}
}

func TestDependencyMapper_CyclesTerminate(t *testing.T) {
	listing := `{"dependencies": {
		"a": {"pkgMeta": {"name": "a"}, "dependencies": {
			"b": {"pkgMeta": {"name": "b"}, "dependencies": {
				"a": {"pkgMeta": {"name": "a"}}
			}}
		}}
	}}`

	pkgs, err := NewDependencyMapper().Map([]byte(listing), Configuration{Directory: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("len = %d, want 2", len(pkgs))
	}
	if pkgs[1].Dependencies[0] != pkgs[0] {
		t.Error("cycle should point back at the first package")
	}
}

func TestDependencyMapper_ResolvedEntryFillsUnresolved(t *testing.T) {
	listing := `{"dependencies": {
		"plugin": {"pkgMeta": {"name": "plugin", "main": "plugin.js"}, "dependencies": {
			"jquery": "~1.9"
		}},
		"jquery": {
			"canonicalDir": "/srv/app/components/jquery",
			"pkgMeta": {"name": "jquery", "version": "1.9.1", "main": "jquery.js"}
		}
	}}`

	pkgs, err := NewDependencyMapper().Map([]byte(listing), Configuration{Directory: "/srv/app"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("len = %d, want 2", len(pkgs))
	}

	plugin, jquery := pkgs[0], pkgs[1]
	if plugin.Dependencies[0] != jquery {
		t.Error("plugin should share the resolved jquery package")
	}
	want := []string{filepath.Join("/srv/app/components/jquery", "jquery.js")}
	if !slices.Equal(jquery.Scripts, want) {
		t.Errorf("jquery Scripts = %v, want %v", jquery.Scripts, want)
	}
	if jquery.Version != "1.9.1" {
		t.Errorf("jquery Version = %q, want 1.9.1", jquery.Version)
	}
}

func TestDependencyMapper_UnresolvedDoesNotReplaceResolved(t *testing.T) {
	listing := `{"dependencies": {
		"jquery": {"pkgMeta": {"name": "jquery", "main": "jquery.js"}},
		"plugin": {"pkgMeta": {"name": "plugin"}, "dependencies": {"jquery": "~1.9"}}
	}}`

	pkgs, err := NewDependencyMapper().Map([]byte(listing), Configuration{Directory: "/srv/app"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs[0].Scripts) != 1 {
		t.Errorf("jquery Scripts = %v, want one script", pkgs[0].Scripts)
	}
}

func TestDependencyMapper_CanonicalDir(t *testing.T) {
	listing := `{"dependencies": {"jquery": {
		"canonicalDir": "/srv/app/bower_components/jquery",
		"pkgMeta": {"name": "jquery", "main": "dist/jquery.js"}
	}}}`

	pkgs, err := NewDependencyMapper().Map([]byte(listing), Configuration{Directory: "/srv/app"})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/srv/app/bower_components/jquery", "dist", "jquery.js")
	if len(pkgs[0].Scripts) != 1 || pkgs[0].Scripts[0] != want {
		t.Errorf("Scripts = %v, want [%s]", pkgs[0].Scripts, want)
	}
}

func TestDependencyMapper_InvalidJSON(t *testing.T) {
	tests := []struct {
		name    string
		listing string
	}{
		{"not json", "bower not found"},
		{"dependencies array", `{"dependencies": []}`},
		{"bad main", `{"dependencies": {"a": {"pkgMeta": {"main": 42}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDependencyMapper().Map([]byte(tt.listing), Configuration{Directory: "/app"})
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidManifest)
			}
		})
	}
}

func TestDependencyMapper_EmptyListing(t *testing.T) {
	pkgs, err := NewDependencyMapper().Map([]byte(`{"dependencies": null}`), Configuration{Directory: "/app"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 0 {
		t.Errorf("len = %d, want 0", len(pkgs))
	}
}
