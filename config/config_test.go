package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.WSPort != 8080 {
		t.Errorf("expected WSPort=8080, got %d", cfg.WSPort)
	}
	if cfg.MaxNameLength != 24 {
		t.Errorf("expected MaxNameLength=24, got %d", cfg.MaxNameLength)
	}
	if cfg.ShuffleAttempts != 2000 {
		t.Errorf("expected ShuffleAttempts=2000, got %d", cfg.ShuffleAttempts)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected Seed=0, got %d", cfg.Seed)
	}
	if cfg.BashWear != 5 {
		t.Errorf("expected BashWear=5, got %d", cfg.BashWear)
	}
	if cfg.Abilities.Trade.Price != 10 {
		t.Errorf("expected Trade.Price=10, got %d", cfg.Abilities.Trade.Price)
	}
	if cfg.Abilities.Lash.MaxTargets != 3 {
		t.Errorf("expected Lash.MaxTargets=3, got %d", cfg.Abilities.Lash.MaxTargets)
	}
	if cfg.Abilities.Digger.MaxCards != 3 {
		t.Errorf("expected Digger.MaxCards=3, got %d", cfg.Abilities.Digger.MaxCards)
	}
	if cfg.DatabaseURL != "" || cfg.NATSURL != "" || cfg.AuthBaseURL != "" {
		t.Errorf("expected external services to be unset by default, got %+v", cfg)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("WS_PORT", "9090")
	os.Setenv("RNG_SEED", "42")
	os.Setenv("TRADE_PRICE", "7")
	os.Setenv("NATS_URL", "nats://localhost:4222")
	defer func() {
		os.Unsetenv("WS_PORT")
		os.Unsetenv("RNG_SEED")
		os.Unsetenv("TRADE_PRICE")
		os.Unsetenv("NATS_URL")
	}()

	cfg := Load()

	if cfg.WSPort != 9090 {
		t.Errorf("expected WSPort=9090 after env override, got %d", cfg.WSPort)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected Seed=42 after env override, got %d", cfg.Seed)
	}
	if cfg.Abilities.Trade.Price != 7 {
		t.Errorf("expected Trade.Price=7 after env override, got %d", cfg.Abilities.Trade.Price)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("expected NATSURL override, got %q", cfg.NATSURL)
	}
	// Non-overridden fields should remain default
	if cfg.ShuffleAttempts != 2000 {
		t.Errorf("expected ShuffleAttempts=2000 (default), got %d", cfg.ShuffleAttempts)
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	os.Setenv("SHUFFLE_ATTEMPTS", "many")
	os.Setenv("RNG_SEED", "x")
	defer func() {
		os.Unsetenv("SHUFFLE_ATTEMPTS")
		os.Unsetenv("RNG_SEED")
	}()

	cfg := Load()

	if cfg.ShuffleAttempts != 2000 {
		t.Errorf("expected ShuffleAttempts=2000 (default) with invalid env, got %d", cfg.ShuffleAttempts)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected Seed=0 (default) with invalid env, got %d", cfg.Seed)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	yamlBody := "ws_port: 7070\nabilities:\n  lash:\n    max_targets: 2\n  disabled: [CHAMPION]\n"
	if err := os.WriteFile("config.yaml", []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}
	// A JSON file is ignored when config.yaml exists.
	if err := os.WriteFile("config.json", []byte(`{"ws_port": 6060}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()

	if cfg.WSPort != 7070 {
		t.Errorf("expected WSPort=7070 from yaml, got %d", cfg.WSPort)
	}
	if cfg.Abilities.Lash.MaxTargets != 2 {
		t.Errorf("expected Lash.MaxTargets=2 from yaml, got %d", cfg.Abilities.Lash.MaxTargets)
	}
	if cfg.Abilities.Trade.Price != 10 {
		t.Errorf("expected Trade.Price=10 (default), got %d", cfg.Abilities.Trade.Price)
	}
	if len(cfg.Abilities.Disabled) != 1 || cfg.Abilities.Disabled[0] != "CHAMPION" {
		t.Errorf("expected Disabled=[CHAMPION], got %v", cfg.Abilities.Disabled)
	}
}

func TestLoadFromJSON(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	if err := os.WriteFile("config.json", []byte(`{"ws_port": 6060, "bash_wear": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()

	if cfg.WSPort != 6060 {
		t.Errorf("expected WSPort=6060 from json, got %d", cfg.WSPort)
	}
	if cfg.BashWear != 3 {
		t.Errorf("expected BashWear=3 from json, got %d", cfg.BashWear)
	}
}
