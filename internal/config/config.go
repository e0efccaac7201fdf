package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          int     `env:"RESONANCE_PORT" envDefault:"8760"`
	NatsURL       string  `env:"NATS_URL" envDefault:"nats://hermes:4222"`
	NatsToken     string  `env:"NATS_TOKEN"`
	NatsDisabled  bool    `env:"NATS_DISABLED"`
	NatsQueue     string  `env:"NATS_QUEUE" envDefault:"resonance"`
	StoreBackend  string  `env:"STORE_BACKEND" envDefault:"memory"`
	DatabaseURL   string  `env:"DATABASE_URL"`
	RedisURL      string  `env:"REDIS_URL"`
	LogLevel      string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string  `env:"LOG_FILE"`
	APIToken      string  `env:"RESONANCE_API_TOKEN"`
	APIRateLimit  float64 `env:"API_RATE_LIMIT" envDefault:"20"`
	APIRateBurst  int     `env:"API_RATE_BURST" envDefault:"40"`
	BoosterMode   string  `env:"BOOSTER_MODE" envDefault:"stacked"`
	MaxInputLen   int     `env:"MAX_INPUT_LEN" envDefault:"0"`
	HistoryWindow int     `env:"HISTORY_WINDOW" envDefault:"50"`
	DecayRate     float64 `env:"TRUST_DECAY_RATE" envDefault:"0"`
	ExperienceCap int     `env:"EXPERIENCE_CAP" envDefault:"500"`
	SlackBotToken string  `env:"SLACK_BOT_TOKEN"`
	SlackChannel  string  `env:"SLACK_CHANNEL"`

	// Warnings lists values that were ignored in favor of defaults.
	Warnings []string
}

// Load reads .env (if present) and the process environment. Values that do
// not parse fall back to their defaults and are reported in Warnings.
func Load() Config {
	_ = godotenv.Load()

	environ := env.ToMap(os.Environ())
	warnings := dropInvalid(environ)

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		warnings = append(warnings, err.Error())
		cfg = Config{}
		_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	}
	cfg.Warnings = warnings
	return cfg
}

// dropInvalid removes numeric and boolean variables that would fail to parse.
func dropInvalid(environ map[string]string) []string {
	var warnings []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := f.Tag.Get("env")
		if key == "" || key == "-" {
			continue
		}
		v, ok := environ[key]
		if !ok || v == "" {
			continue
		}
		var err error
		switch f.Type.Kind() {
		case reflect.Int:
			_, err = strconv.Atoi(v)
		case reflect.Float64:
			_, err = strconv.ParseFloat(v, 64)
		case reflect.Bool:
			_, err = strconv.ParseBool(v)
		}
		if err != nil {
			delete(environ, key)
			warnings = append(warnings, fmt.Sprintf("%s=%q is invalid, using default %q", key, v, f.Tag.Get("envDefault")))
		}
	}
	return warnings
}
