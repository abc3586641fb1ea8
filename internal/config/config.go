package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Schedule ScheduleConfig `toml:"schedule"`
	Data     DataConfig     `toml:"data"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type ScheduleConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Workers  int           `toml:"workers"` // 0 = unbounded
}

type DataConfig struct {
	SpawnTable  string `toml:"spawn_table"`
	SpawnPolicy string `toml:"spawn_policy"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "tesserad",
		},
		Schedule: ScheduleConfig{
			TickRate: 50 * time.Millisecond,
			Workers:  4,
		},
		Data: DataConfig{
			SpawnTable:  "data/spawn.yaml",
			SpawnPolicy: "scripts/spawn_policy.lua",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
