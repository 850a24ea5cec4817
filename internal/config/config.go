package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
	Game struct {
		PINLength        int    `yaml:"pin_length"`
		BasePoints       int    `yaml:"base_points"`
		MaxSpeedBonus    int    `yaml:"max_speed_bonus"`
		StreakEvery      int    `yaml:"streak_every"`
		StreakBonus      int    `yaml:"streak_bonus"`
		DefaultTimeLimit string `yaml:"default_time_limit"`
	} `yaml:"game"`
	Questions struct {
		File string `yaml:"file"`
		TTL  string `yaml:"ttl"`
	} `yaml:"questions"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Load reads YAML config from path. A missing file yields the zero
// config so the server can run entirely on defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// IntOr returns v unless it is zero, in which case fallback is used.
func IntOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
