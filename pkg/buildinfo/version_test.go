package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "none", "dev"},
		{"v1.2.0", "", "v1.2.0"},
		{"v1.2.0", "3f2a9c1d88e0", "v1.2.0 (3f2a9c1)"},
		{"v1.2.0", "abc", "v1.2.0 (abc)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Errorf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.Contains(got, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", got)
	}
}
