package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TradeAbilityConfig holds configuration for the TRADE ability.
type TradeAbilityConfig struct {
	Price int `json:"price" yaml:"price"`
}

// LashAbilityConfig holds configuration for the LASH ability.
type LashAbilityConfig struct {
	MaxTargets int `json:"max_targets" yaml:"max_targets"`
}

// DiggerAbilityConfig holds configuration for the DIGGER ability.
type DiggerAbilityConfig struct {
	MaxCards int `json:"max_cards" yaml:"max_cards"`
}

// AbilitiesConfig holds per-ability configuration sections.
type AbilitiesConfig struct {
	Trade  TradeAbilityConfig  `json:"trade" yaml:"trade"`
	Lash   LashAbilityConfig   `json:"lash" yaml:"lash"`
	Digger DiggerAbilityConfig `json:"digger" yaml:"digger"`

	// Disabled lists ability tags that are never dealt (e.g. ["CHAMPION"]).
	Disabled []string `json:"disabled" yaml:"disabled"`
}

// Config holds all configurable server and rule parameters.
type Config struct {
	WSPort        int    `json:"ws_port" yaml:"ws_port"`
	MaxNameLength int    `json:"max_name_length" yaml:"max_name_length"`
	LogLevel      string `json:"log_level" yaml:"log_level"`

	// ShuffleAttempts caps how many random shuffles the deck generator tries
	// before it falls back to an arranged layout.
	ShuffleAttempts int `json:"shuffle_attempts" yaml:"shuffle_attempts"`
	// Seed fixes the random source of every new run; 0 seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed"`
	// BashWear is how much a bashing shield loses per hit.
	BashWear int `json:"bash_wear" yaml:"bash_wear"`

	// Abilities holds configuration for individual abilities.
	Abilities AbilitiesConfig `json:"abilities" yaml:"abilities"`

	DatabaseURL string `json:"database_url" yaml:"database_url"`
	AuthBaseURL string `json:"auth_base_url" yaml:"auth_base_url"`
	NATSURL     string `json:"nats_url" yaml:"nats_url"`
	// NATSSubject is the subject prefix telemetry events are published under.
	NATSSubject string `json:"nats_subject" yaml:"nats_subject"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		WSPort:          8080,
		MaxNameLength:   24,
		LogLevel:        "info",
		ShuffleAttempts: 2000,
		BashWear:        5,
		Abilities: AbilitiesConfig{
			Trade:  TradeAbilityConfig{Price: 10},
			Lash:   LashAbilityConfig{MaxTargets: 3},
			Digger: DiggerAbilityConfig{MaxCards: 3},
		},
		NATSSubject: "cardcrawl",
	}
}

// Load reads configuration from an optional config.yaml (or config.json when
// no YAML file exists), then applies environment variable overrides. Fields
// not set in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			slog.Warn("failed to parse config.yaml", "tag", "config", "err", err)
		}
	} else if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			slog.Warn("failed to parse config.json", "tag", "config", "err", err)
		}
	}

	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideInt(&cfg.MaxNameLength, "MAX_NAME_LENGTH")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideInt(&cfg.ShuffleAttempts, "SHUFFLE_ATTEMPTS")
	overrideInt64(&cfg.Seed, "RNG_SEED")
	overrideInt(&cfg.BashWear, "BASH_WEAR")
	overrideInt(&cfg.Abilities.Trade.Price, "TRADE_PRICE")
	overrideInt(&cfg.Abilities.Lash.MaxTargets, "LASH_MAX_TARGETS")
	overrideInt(&cfg.Abilities.Digger.MaxCards, "DIGGER_MAX_CARDS")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.AuthBaseURL, "AUTH_BASE_URL")
	overrideString(&cfg.NATSURL, "NATS_URL")
	overrideString(&cfg.NATSSubject, "NATS_SUBJECT")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			slog.Warn("invalid env value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideInt64(field *int64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			*field = n
		} else {
			slog.Warn("invalid env value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
