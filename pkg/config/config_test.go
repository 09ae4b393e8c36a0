package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "optioncalc.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "optioncalc" || cfg.HTTP.Port != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Kafka.Enabled || cfg.Redis.Enabled {
		t.Fatal("kafka and redis must be disabled by default")
	}
	if cfg.Redis.TTLDuration() != time.Hour {
		t.Fatalf("ttl = %v", cfg.Redis.TTLDuration())
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
service_name = "optioncalc-test"

[http]
port = 9000

[redis]
enabled = true
ttl = 60

[kafka]
enabled = true
brokers = ["kafka:9092"]
topic = "contracts"
`)
	t.Setenv("APP_HTTP_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "optioncalc-test" {
		t.Fatalf("service name = %q", cfg.ServiceName)
	}
	if cfg.HTTP.Port != 9100 {
		t.Fatalf("env override ignored, port = %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.Addr() != "0.0.0.0:9100" {
		t.Fatalf("addr = %s", cfg.HTTP.Addr())
	}
	if !cfg.Redis.Enabled || cfg.Redis.TTL != 60 {
		t.Fatalf("redis = %+v", cfg.Redis)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "kafka:9092" || cfg.Kafka.Topic != "contracts" {
		t.Fatalf("kafka = %+v", cfg.Kafka)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{ServiceName: "svc", HTTP: HTTPConfig{Port: 8080}}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"ok", func(*Config) {}, ""},
		{"missing name", func(c *Config) { c.ServiceName = "" }, "service_name"},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "HTTP port"},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "t" }, "kafka.brokers"},
		{"redis without ttl", func(c *Config) { c.Redis.Enabled = true }, "redis ttl"},
		{"rate limit zero burst", func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, QPS: 1} }, "rate limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cfg.Environment != "dev" {
					t.Fatalf("environment default = %q", cfg.Environment)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Fatalf("error = %v, want containing %q", err, tc.errMsg)
			}
		})
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "service_name = [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
