package startup

import (
	"errors"
	"testing"
	"time"

	"media-gallery/internal/memory"
)

func envOf(values map[string]string) envReader {
	return envReader{getenv: func(k string) string { return values[k] }}
}

func TestEnvReader_Boolean(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{"Returns default when unset", "", true, true},
		{"Parses true", "true", false, true},
		{"Parses false", "false", true, false},
		{"Parses 1", "1", false, true},
		{"Parses 0", "0", true, false},
		{"Falls back on garbage", "maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := envOf(map[string]string{"K": tt.value}).boolean("K", tt.defaultValue)
			if got != tt.want {
				t.Errorf("boolean(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestEnvReader_Integer(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 3},
		{"4", 4},
		{"-2", -2},
		{"four", 3},
	}
	for _, tt := range tests {
		got := envOf(map[string]string{"K": tt.value}).integer("K", 3)
		if got != tt.want {
			t.Errorf("integer(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestEnvReader_Duration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 10 * time.Millisecond},
		{"25ms", 25 * time.Millisecond},
		{"1s", time.Second},
		{"-5ms", 10 * time.Millisecond},
		{"soon", 10 * time.Millisecond},
	}
	for _, tt := range tests {
		got := envOf(map[string]string{"K": tt.value}).duration("K", 10*time.Millisecond)
		if got != tt.want {
			t.Errorf("duration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEnvReader_List(t *testing.T) {
	defaults := []string{".DS_Store"}

	got := envOf(nil).list("K", defaults)
	if len(got) != 1 || got[0] != ".DS_Store" {
		t.Errorf("list(unset) = %v, want %v", got, defaults)
	}
	got[0] = "changed"
	if defaults[0] != ".DS_Store" {
		t.Error("list(unset) should not alias the default slice")
	}

	got = envOf(map[string]string{"K": " Thumbs.db, .DS_Store ,,desktop.ini"}).list("K", defaults)
	want := []string{"Thumbs.db", ".DS_Store", "desktop.ini"}
	if len(got) != len(want) {
		t.Fatalf("list() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("list()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got = envOf(map[string]string{"K": ","}).list("K", defaults)
	if got == nil || len(got) != 0 {
		t.Errorf("list(\",\") = %#v, want an empty non-nil list", got)
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "health"},
		{"/api/carousel/next", "api/carousel"},
		{"/api/state", "api/state"},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := getRouteGroup(tt.path); got != tt.want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLogMemoryConfig(_ *testing.T) {
	LogMemoryConfig(memory.ConfigResult{Source: "none"})
	LogMemoryConfig(memory.ConfigResult{Configured: true, Source: "GOMEMLIMIT", GoMemLimit: 1 << 30})
	LogMemoryConfig(memory.ConfigResult{
		Configured:     true,
		Source:         "MEMORY_LIMIT",
		ContainerLimit: 2 << 30,
		GoMemLimit:     1 << 30,
		Ratio:          0.5,
	})
}

func TestLogGalleryLoad(_ *testing.T) {
	LogGalleryLoad("/photos", time.Second, nil)
	LogGalleryLoad("/photos", 0, errors.New("permission denied"))
}
