package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("expected rate limiting enabled by default")
	}
	if cfg.Capacity != 60 || cfg.RefillTokens != 1 {
		t.Errorf("capacity=%d refill=%d, want 60/1", cfg.Capacity, cfg.RefillTokens)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("refill interval = %v, want 1s", cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("refill tokens = %d, want clamp to 1", cfg.RefillTokens)
	}
	if want := 10 * time.Second; cfg.TTL != want {
		t.Errorf("ttl = %v, want raised to %v (5x refill interval)", cfg.TTL, want)
	}
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("methods = %v, want GET and HEAD", cfg.Methods)
	}
	if cfg.Methods["POST"] {
		t.Error("POST must not be cached")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	if got := envStr("TEST_STR", "d"); got != "value" {
		t.Errorf("envStr = %q", got)
	}
	if got := envStr("TEST_STR_UNSET", "d"); got != "d" {
		t.Errorf("envStr default = %q", got)
	}

	t.Setenv("TEST_BOOL", "off")
	if envBool("TEST_BOOL", true) {
		t.Error("envBool(off) = true")
	}
	t.Setenv("TEST_BOOL", "garbage")
	if !envBool("TEST_BOOL", true) {
		t.Error("envBool falls back to the default on garbage")
	}

	t.Setenv("TEST_INT", "17")
	if got := envInt("TEST_INT", 3); got != 17 {
		t.Errorf("envInt = %d", got)
	}
	t.Setenv("TEST_DUR", "90s")
	if got := envDur("TEST_DUR", time.Second); got != 90*time.Second {
		t.Errorf("envDur = %v", got)
	}
}
