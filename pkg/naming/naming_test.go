package naming

import "testing"

func TestPackageNamingStrategy_TranslateName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"package", "package"},
		{"other_package", "other_package"},
		{"invalid-package.name", "invalid_package_name"},
		{"jquery-ui", "jquery_ui"},
		{"Bootstrap3", "Bootstrap3"},
		{"font awesome", "font_awesome"},
		{"ünicode", "_nicode"},
		{"", ""},
	}

	s := PackageNamingStrategy{}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := s.TranslateName(tt.input); got != tt.want {
				t.Errorf("TranslateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPackageNamingStrategy_Deterministic(t *testing.T) {
	s := PackageNamingStrategy{}
	if s.TranslateName("a.b-c") != s.TranslateName("a.b-c") {
		t.Error("TranslateName should be deterministic")
	}
}

func TestStrategyFunc(t *testing.T) {
	s := StrategyFunc(func(name string) string { return "x_" + name })
	if got := s.TranslateName("pkg"); got != "x_pkg" {
		t.Errorf("TranslateName = %q, want %q", got, "x_pkg")
	}
}
