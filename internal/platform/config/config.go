package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// ServicesConfig holds the base URLs of the remote microservices the
// return workflow talks to. Base URLs are stored without a trailing slash.
type ServicesConfig struct {
	LoansBaseURL     string `yaml:"loans_base_url"`
	InventoryBaseURL string `yaml:"inventory_base_url"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

type Config struct {
	Version  string         `yaml:"version"`
	Mode     string         `yaml:"mode"`
	Server   ServerConfig   `yaml:"server"`
	DB       DatabaseConfig `yaml:"database"`
	Services ServicesConfig `yaml:"services"`
}

// envOverrides lets deployments replace file values without editing the
// yaml (container environments inject DSN parts and service URLs).
type envOverrides struct {
	Mode             string `envconfig:"APP_MODE"`
	ServerAddr       string `envconfig:"SERVER_ADDR"`
	DBHost           string `envconfig:"DB_HOST"`
	DBPort           int    `envconfig:"DB_PORT"`
	DBUser           string `envconfig:"DB_USER"`
	DBPassword       string `envconfig:"DB_PASSWORD"`
	DBName           string `envconfig:"DB_NAME"`
	LoansBaseURL     string `envconfig:"LOANS_BASE_URL"`
	InventoryBaseURL string `envconfig:"INVENTORY_BASE_URL"`
}

func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var ov envOverrides
	if err := envconfig.Process("", &ov); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}
	cfg.apply(ov)

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Services.TimeoutSeconds <= 0 {
		cfg.Services.TimeoutSeconds = 10
	}
	return &cfg, nil
}

func (c *Config) apply(ov envOverrides) {
	if ov.Mode != "" {
		c.Mode = ov.Mode
	}
	if ov.ServerAddr != "" {
		c.Server.Addr = ov.ServerAddr
	}
	if ov.DBHost != "" {
		c.DB.Host = ov.DBHost
	}
	if ov.DBPort != 0 {
		c.DB.Port = ov.DBPort
	}
	if ov.DBUser != "" {
		c.DB.Username = ov.DBUser
	}
	if ov.DBPassword != "" {
		c.DB.Password = ov.DBPassword
	}
	if ov.DBName != "" {
		c.DB.DBName = ov.DBName
	}
	if ov.LoansBaseURL != "" {
		c.Services.LoansBaseURL = ov.LoansBaseURL
	}
	if ov.InventoryBaseURL != "" {
		c.Services.InventoryBaseURL = ov.InventoryBaseURL
	}
}
