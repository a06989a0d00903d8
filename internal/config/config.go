package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Storage       StorageConfig       `yaml:"storage"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type StorageConfig struct {
	Type string `yaml:"type"` // "sqlite" или "inmemory"
	Path string `yaml:"path"`
}

type NotificationsConfig struct {
	Enabled            bool `yaml:"enabled"`
	RestrictedPlatform bool `yaml:"restricted_platform"`
	PromptDelayMs      int  `yaml:"prompt_delay_ms"`
	ScanIntervalMs     int  `yaml:"scan_interval_ms"`
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: "8080"},
		Logging: LoggingConfig{Development: true},
		Storage: StorageConfig{Type: "sqlite", Path: "taskboard.db"},
		Notifications: NotificationsConfig{
			Enabled:        true,
			PromptDelayMs:  2000,
			ScanIntervalMs: 60000,
		},
	}
}

// Load читает config.yml; если файла нет - работаем на дефолтах,
// это не ошибка для локального приложения.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) PromptDelay() time.Duration {
	return time.Duration(c.Notifications.PromptDelayMs) * time.Millisecond
}

func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Notifications.ScanIntervalMs) * time.Millisecond
}
