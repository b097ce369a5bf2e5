package version

import "testing"

func TestGet_WithLdflags(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "v0.4.0"
	if got := Get(); got != "v0.4.0" {
		t.Errorf("Get() = %v, want %v", got, "v0.4.0")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		dirty   bool
		want    string
	}{
		{"no commit", "dev", "", false, "dev"},
		{"short commit", "v1.0.0", "abc123", false, "v1.0.0 (abc123)"},
		{"long commit is shortened", "v1.0.0", "0123456789abcdef", false, "v1.0.0 (0123456)"},
		{"modified tree", "dev", "0123456789abcdef", true, "dev (0123456, modified)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.version, tt.commit, tt.dirty); got != tt.want {
				t.Errorf("describe() = %v, want %v", got, tt.want)
			}
		})
	}
}
