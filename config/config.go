package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type ServerConfig struct {
	Port           int     `yaml:"port" validate:"gt=0,lte=65535"`
	GinMode        string  `yaml:"gin_mode" validate:"oneof=debug release test"`
	LogLevel       string  `yaml:"log_level" validate:"oneof=trace debug info warn warning error"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"gte=0"`
}

type DatabaseConfig struct {
	Driver         string        `yaml:"driver" validate:"oneof=postgres mysql sqlite"`
	Host           string        `yaml:"host" validate:"required_unless=Driver sqlite"`
	Port           int           `yaml:"port" validate:"gte=0,lte=65535"`
	Name           string        `yaml:"name" validate:"required"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	Schema         string        `yaml:"schema" validate:"omitempty,alphanum"`
	PoolSize       int           `yaml:"pool_size" validate:"gte=1,lte=100"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout" validate:"gt=0"`
	MaxTake        int           `yaml:"max_take" validate:"gte=1"`
}

type NSConfig struct {
	SubscriptionKey string        `yaml:"subscription_key"`
	BaseURL         string        `yaml:"base_url" validate:"required,url"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NS       NSConfig       `yaml:"ns"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			GinMode:        "debug",
			LogLevel:       "info",
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		Database: DatabaseConfig{
			Driver:         DriverPostgres,
			Host:           "localhost",
			Port:           5432,
			Name:           "fastapi",
			Username:       "postgres",
			Password:       "secret",
			PoolSize:       3,
			AcquireTimeout: 2 * time.Second,
			MaxTake:        100,
		},
		NS: NSConfig{
			SubscriptionKey: "<NS_API_KEY>",
			BaseURL:         "https://gateway.apiportal.ns.nl",
			Timeout:         10 * time.Second,
		},
	}
}

// Load membaca konfigurasi: default -> file YAML (opsional) -> environment.
// File dipilih lewat CONFIG_FILE, default config.yml; file yang tidak ada diabaikan.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yml"
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.mergeEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	var errs []error

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v := getenv(key); v != "" {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	num("PORT", &c.Server.Port)
	str("GIN_MODE", &c.Server.GinMode)
	str("log_level", &c.Server.LogLevel)
	float("rate_limit_rps", &c.Server.RateLimitRPS)
	num("rate_limit_burst", &c.Server.RateLimitBurst)

	str("db_driver", &c.Database.Driver)
	str("host_server", &c.Database.Host)
	num("db_server_port", &c.Database.Port)
	str("database_name", &c.Database.Name)
	str("db_username", &c.Database.Username)
	str("db_password", &c.Database.Password)
	str("db_schema", &c.Database.Schema)
	num("db_pool_size", &c.Database.PoolSize)
	dur("db_acquire_timeout", &c.Database.AcquireTimeout)
	num("pagination_max_take", &c.Database.MaxTake)

	str("ns_api", &c.NS.SubscriptionKey)
	str("ns_base_url", &c.NS.BaseURL)
	dur("ns_timeout", &c.NS.Timeout)

	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DSN menyusun connection string; username/password di-escape.
func (c *Config) DSN() string {
	return c.Database.dsn(url.UserPassword(c.Database.Username, c.Database.Password), c.Database.Password)
}

// RedactedDSN sama dengan DSN tetapi password diganti, aman untuk log.
func (c *Config) RedactedDSN() string {
	return c.Database.dsn(url.UserPassword(c.Database.Username, "xxxxx"), "xxxxx")
}

func (d DatabaseConfig) dsn(user *url.Userinfo, password string) string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	switch d.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = d.Username
		mc.Passwd = password
		mc.Net = "tcp"
		mc.Addr = hostPort
		mc.DBName = d.Name
		mc.ParseTime = true
		mc.ClientFoundRows = true
		mc.Loc = time.UTC
		return mc.FormatDSN()
	case DriverSQLite:
		return sqliteDSN(d.Name)
	default:
		u := url.URL{
			Scheme: "postgres",
			User:   user,
			Host:   hostPort,
			Path:   "/" + d.Name,
		}
		return u.String()
	}
}

// sqliteDSN menyalakan foreign key kecuali DSN sudah mengaturnya sendiri.
func sqliteDSN(name string) string {
	if strings.Contains(name, "_foreign_keys=") || strings.Contains(name, "_fk=") {
		return name
	}
	if strings.Contains(name, "?") {
		return name + "&_foreign_keys=on"
	}
	return name + "?_foreign_keys=on"
}
