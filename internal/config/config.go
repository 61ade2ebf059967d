package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ApiUrl         string
	ListenAddr     string
	StoragePath    string
	RequestTimeout time.Duration
	LogLevel       string
}

// Load reads .env (when present), then flags from args, then environment
// variables, which take precedence over flags.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	flags := flag.NewFlagSet("todo-client", flag.ContinueOnError)
	apiUrl := flags.String("api", "http://localhost:8000/api", "Base URL of the task API")
	listenAddr := flags.String("a", ":8080", "The address to bind the dashboard server to")
	storagePath := flags.String("s", "./todo-client.db", "Path of the local storage database")
	timeout := flags.Duration("t", 10*time.Second, "Timeout for requests to the task API")
	logLevel := flags.String("l", "info", "Log level")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ApiUrl:         *apiUrl,
		ListenAddr:     *listenAddr,
		StoragePath:    *storagePath,
		RequestTimeout: *timeout,
		LogLevel:       *logLevel,
	}

	for key, dst := range map[string]*string{
		"TODO_API_URL": &cfg.ApiUrl,
		"LISTEN_ADDR":  &cfg.ListenAddr,
		"STORAGE_PATH": &cfg.StoragePath,
		"LOG_LEVEL":    &cfg.LogLevel,
	} {
		if value, exist := os.LookupEnv(key); exist {
			if value == "" {
				return Config{}, fmt.Errorf("%s environment variable not set", key)
			}
			*dst = value
		}
	}

	if value, exist := os.LookupEnv("REQUEST_TIMEOUT"); exist {
		d, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse REQUEST_TIMEOUT %q: %w", value, err)
		}
		cfg.RequestTimeout = d
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.ApiUrl)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.ApiUrl, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q: expected absolute http(s) url", c.ApiUrl)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request timeout: %s", c.RequestTimeout)
	}
	return nil
}
