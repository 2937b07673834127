package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	v, c, d := Info()
	if v == "" || c == "" || d == "" {
		t.Fatalf("build info must not contain empty fields: version=%q commit=%q date=%q", v, c, d)
	}
	if v != GetVersion() {
		t.Errorf("GetVersion (%s) must match Info version (%s)", GetVersion(), v)
	}
}

func TestString_ContainsBuildFields(t *testing.T) {
	s := String()
	for _, field := range []string{"version=", "commit=", "date="} {
		if !strings.Contains(s, field) {
			t.Errorf("String() must contain %q, got %q", field, s)
		}
	}
}
