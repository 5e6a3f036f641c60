package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
)

func TestLoad_Defaults(t *testing.T) {
	// No env overrides
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("expected Env=dev, got %q", cfg.Env)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected LogLevel=error, got %q", cfg.LogLevel)
	}
	if cfg.Server != "8.8.8.8:53" {
		t.Errorf("expected Server=8.8.8.8:53, got %q", cfg.Server)
	}
	if cfg.Proto != "udp" {
		t.Errorf("expected Proto=udp, got %q", cfg.Proto)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected Timeout=5s, got %v", cfg.Timeout)
	}
	if cfg.BufSize != 512 {
		t.Errorf("expected BufSize=512, got %d", cfg.BufSize)
	}
}

func TestLoad_ValidOverrides(t *testing.T) {
	t.Setenv("RRDIG_ENV", "prod")
	t.Setenv("RRDIG_LOG_LEVEL", "debug")
	t.Setenv("RRDIG_SERVER", "1.1.1.1:5353")
	t.Setenv("RRDIG_PROTO", "tcp")
	t.Setenv("RRDIG_TIMEOUT", "2s")
	t.Setenv("RRDIG_BUFSIZE", "4096")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %q", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %q", cfg.LogLevel)
	}
	if cfg.Server != "1.1.1.1:5353" {
		t.Errorf("expected Server=1.1.1.1:5353, got %q", cfg.Server)
	}
	if cfg.Proto != "tcp" {
		t.Errorf("expected Proto=tcp, got %q", cfg.Proto)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("expected Timeout=2s, got %v", cfg.Timeout)
	}
	if cfg.BufSize != 4096 {
		t.Errorf("expected BufSize=4096, got %d", cfg.BufSize)
	}
}

func TestLoad_PartialOverridesKeepDefaults(t *testing.T) {
	t.Setenv("RRDIG_SERVER", "[2001:4860:4860::8888]:53")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server != "[2001:4860:4860::8888]:53" {
		t.Errorf("expected Server override, got %q", cfg.Server)
	}
	if cfg.Proto != "udp" {
		t.Errorf("expected default Proto=udp, got %q", cfg.Proto)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected default Timeout=5s, got %v", cfg.Timeout)
	}
}

func TestLoad_WhenKoanfDefaultLoadFails(t *testing.T) {
	orig := defaultLoader
	defaultLoader = func(k *koanf.Koanf) error { return errors.New("mocked error") }
	defer func() { defaultLoader = orig }()

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "mocked error") {
		t.Fatal("expected error when loading defaults, got nil")
	}
}

func TestLoad_WhenKoanfEnvLoadFails(t *testing.T) {
	orig := envLoader
	envLoader = func(k *koanf.Koanf) error { return errors.New("mocked error") }
	defer func() { envLoader = orig }()

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "mocked error") {
		t.Fatal("expected error when loading env, got nil")
	}
}

func TestLoad_RegisterValidationFails(t *testing.T) {
	orig := registerValidation
	registerValidation = func(v *validator.Validate) error { return errors.New("mocked validation error") }
	defer func() { registerValidation = orig }()

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "mocked validation error") {
		t.Fatal("expected error when registering validation, got nil")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("RRDIG_ENV", "staging")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid RRDIG_ENV, got nil")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("RRDIG_LOG_LEVEL", "trace")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid RRDIG_LOG_LEVEL, got nil")
	}
}

func TestLoad_InvalidServer(t *testing.T) {
	t.Setenv("RRDIG_SERVER", "not_a_server")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid RRDIG_SERVER, got nil")
	}
}

func TestLoad_ServerWithoutPort(t *testing.T) {
	t.Setenv("RRDIG_SERVER", "8.8.8.8")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for RRDIG_SERVER without port, got nil")
	}
}

func TestLoad_InvalidProto(t *testing.T) {
	t.Setenv("RRDIG_PROTO", "doh")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid RRDIG_PROTO, got nil")
	}
}

func TestLoad_ZeroTimeout(t *testing.T) {
	t.Setenv("RRDIG_TIMEOUT", "0s")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for zero RRDIG_TIMEOUT, got nil")
	}
}

func TestLoad_TimeoutNotADuration(t *testing.T) {
	t.Setenv("RRDIG_TIMEOUT", "not_a_duration")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for non-duration RRDIG_TIMEOUT, got nil")
	}
}

func TestLoad_BufSizeTooSmall(t *testing.T) {
	t.Setenv("RRDIG_BUFSIZE", "11")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for RRDIG_BUFSIZE below a DNS header, got nil")
	}
}

func TestLoad_BufSizeTooLarge(t *testing.T) {
	t.Setenv("RRDIG_BUFSIZE", "65536")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for RRDIG_BUFSIZE above 65535, got nil")
	}
}

func TestValidIPPort(t *testing.T) {
	type testCase struct {
		input    string
		expected bool
	}

	cases := []testCase{
		{"1.2.3.4:53", true},
		{"127.0.0.1:5353", true},
		{"::1:53", false}, // missing brackets for IPv6
		{"[::1]:53", true},
		{"192.168.1.1:", false},
		{":53", false},
		{"not_an_ip:53", false},
		{"1.2.3.4:notaport", false},
		{"", false},
		{"1.2.3.4", false},
		{"[::1]", false},
	}

	validate := validator.New()
	_ = validate.RegisterValidation("ip_port", validIPPort)

	for _, tc := range cases {
		// Use a struct to test the validator
		type S struct {
			Addr string `validate:"ip_port"`
		}
		s := S{Addr: tc.input}
		err := validate.Struct(s)
		if tc.expected && err != nil {
			t.Errorf("validIPPort(%q) = false, want true", tc.input)
		}
		if !tc.expected && err == nil {
			t.Errorf("validIPPort(%q) = true, want false", tc.input)
		}
	}
}

func TestDefaultLoader_LoadsDefaults(t *testing.T) {
	k := koanf.New(".")
	if err := defaultLoader(k); err != nil {
		t.Fatalf("defaultLoader returned error: %v", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if cfg != DEFAULT_APP_CONFIG {
		t.Errorf("expected defaults %+v, got %+v", DEFAULT_APP_CONFIG, cfg)
	}
}
