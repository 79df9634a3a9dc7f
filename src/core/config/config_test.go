package config

import (
	"testing"
	"time"
)

func TestConfigOrDefault(t *testing.T) {
	t.Setenv("GEM_TEST_KEY", "")
	if got := ConfigOrDefault("GEM_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("GEM_TEST_KEY", "value")
	if got := ConfigOrDefault("GEM_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", 5 * time.Minute},
		{"90s", 90 * time.Second},
		{"120", 2 * time.Minute},
		{"soon", 5 * time.Minute},
	}
	for _, tc := range cases {
		t.Setenv("GEM_TEST_DURATION", tc.raw)
		if got := Duration("GEM_TEST_DURATION", 5*time.Minute); got != tc.want {
			t.Errorf("Duration(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestBool(t *testing.T) {
	t.Setenv("GEM_TEST_BOOL", "false")
	if Bool("GEM_TEST_BOOL", true) {
		t.Fatal("expected false")
	}
	t.Setenv("GEM_TEST_BOOL", "nope")
	if !Bool("GEM_TEST_BOOL", true) {
		t.Fatal("invalid value should fall back to default")
	}
}
