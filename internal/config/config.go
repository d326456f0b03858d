package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	Mode       string   `yaml:"mode" env:"TTT_MODE" env-default:"human_vs_ai"`
	Difficulty string   `yaml:"difficulty" env:"TTT_DIFFICULTY" env-default:"hard"`
	FirstTurn  string   `yaml:"first-turn" env:"TTT_FIRST_TURN" env-default:"random"`
	Seed       int64    `yaml:"seed" env:"TTT_SEED" env-default:"0"`
	Store      Store    `yaml:"store"`
	Simulate   Simulate `yaml:"simulate"`
}

type Store struct {
	Type     string        `yaml:"type" env:"TTT_STORE" env-default:"memory"`
	MatchTTL time.Duration `yaml:"match-ttl" env:"TTT_MATCH_TTL" env-default:"24h"`
	Redis    Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"TTT_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TTT_REDIS_PORT" env-default:"6379"`
}

type Simulate struct {
	Matches int `yaml:"matches" env:"TTT_SIM_MATCHES" env-default:"100"`
	Workers int `yaml:"workers" env:"TTT_SIM_WORKERS" env-default:"4"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// LoadEnv - load configuration from the environment only, for runs without a config file.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
