package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultInternalAuthHeader = "X-Internal-Auth"

type Config struct {
	Env          string             `yaml:"env"`
	HTTP         HTTPConfig         `yaml:"http"`
	Log          LogConfig          `yaml:"log"`
	Redis        RedisConfig        `yaml:"redis"`
	Upstream     UpstreamConfig     `yaml:"upstream"`
	InternalAuth InternalAuthConfig `yaml:"internal_auth"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level     string `yaml:"level"`
	ToConsole bool   `yaml:"to_console"`
	ToFile    bool   `yaml:"to_file"`
	FilePath  string `yaml:"file_path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// UpstreamConfig points at the SDK Finance REST API.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// InternalAuthConfig holds the shared secret the API gateway presents on every call.
type InternalAuthConfig struct {
	Secret string `yaml:"secret"`
	Header string `yaml:"header"`
}

func Default() Config {
	return Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:         ":4000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 65 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Log: LogConfig{
			Level:     "info",
			ToConsole: true,
			ToFile:    false,
			FilePath:  "logs/app.log",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
		Upstream: UpstreamConfig{
			Timeout: 15 * time.Second,
		},
		InternalAuth: InternalAuthConfig{
			Header: DefaultInternalAuthHeader,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports configuration that makes the service unable to start.
// An empty internal auth secret passes; the internal access guard rejects
// requests while it is unset.
func (c Config) Validate() error {
	base := strings.TrimSpace(c.Upstream.BaseURL)
	if base == "" {
		return errors.New("upstream base url is not defined in configuration")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parse upstream base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid upstream base url: %s", base)
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("invalid upstream timeout: %s", c.Upstream.Timeout)
	}
	return nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return fmt.Errorf("parse PORT int: %q", v)
		}
		cfg.HTTP.Addr = ":" + strconv.Itoa(port)
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if err := overrideBool("LOG_TO_CONSOLE", &cfg.Log.ToConsole); err != nil {
		return err
	}
	if err := overrideBool("LOG_TO_FILE", &cfg.Log.ToFile); err != nil {
		return err
	}
	if v := os.Getenv("LOG_FILE_PATH"); v != "" {
		cfg.Log.FilePath = v
	}

	host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")
	if host != "" || port != "" {
		if host == "" {
			host = "localhost"
		}
		if port == "" {
			port = "6379"
		}
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("parse REDIS_PORT int: %w", err)
		}
		cfg.Redis.Addr = host + ":" + port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if err := overrideInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	if v := os.Getenv("SDK_FINANCE_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if err := overrideDuration("SDK_FINANCE_TIMEOUT", &cfg.Upstream.Timeout); err != nil {
		return err
	}

	if v := os.Getenv("INTERNAL_AUTH_SECRET_BANKING_SERVICE"); v != "" {
		cfg.InternalAuth.Secret = v
	}
	if v := os.Getenv("INTERNAL_AUTH_HEADER"); v != "" {
		cfg.InternalAuth.Header = v
	}
	if strings.TrimSpace(cfg.InternalAuth.Header) == "" {
		cfg.InternalAuth.Header = DefaultInternalAuthHeader
	}

	return nil
}

func overrideDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s duration: %w", key, err)
	}
	*target = d
	return nil
}

func overrideInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s int: %w", key, err)
	}
	*target = n
	return nil
}

func overrideBool(key string, target *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s bool: %w", key, err)
	}
	*target = b
	return nil
}
