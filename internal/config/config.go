package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel       string `yaml:"log-level" env-default:"info"`
	HTTPPort       string `yaml:"http-port" env-default:"9090"`
	GamePort       string `yaml:"game-port" env-default:"9001"`
	SocketPort     string `yaml:"socket-port" env-default:"9002"`
	MaxSessions    int    `yaml:"max-sessions" env-default:"1000"`
	TickIntervalMS int    `yaml:"tick-interval-ms" env-default:"15"`
	Redis          Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Config) TickInterval() time.Duration {
	return time.Duration(that.TickIntervalMS) * time.Millisecond
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
