package config

import "testing"

func TestProduction(t *testing.T) {
	cases := map[string]bool{
		"production":  true,
		"Production ": true,
		"development": false,
		"":            false,
	}
	for env, want := range cases {
		c := &Config{Env: env}
		if got := c.Production(); got != want {
			t.Fatalf("Production() with env %q = %v, want %v", env, got, want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "x", "y"); got != "x" {
		t.Fatalf("firstNonEmpty = %q, want x", got)
	}
	if got := firstNonEmpty("", "  "); got != "" {
		t.Fatalf("firstNonEmpty = %q, want empty", got)
	}
}
