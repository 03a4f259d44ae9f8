package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	Postgres   PostgresConfig   `yaml:"postgres"`   // Postgres holds the database configuration.
	HTTPServer HTTPServerConfig `yaml:"http_server"` // HTTPServer holds the REST API listener configuration.
	Monitoring MonitoringConfig `yaml:"monitoring"` // Monitoring holds the metrics and health listener configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

// HTTPServerConfig struct holds the listener settings of the employee API.
type HTTPServerConfig struct {
	Address     string        `yaml:"address"`      // Address is the host:port the API listens on.
	Timeout     time.Duration `yaml:"timeout"`      // Timeout bounds reading and writing a single request.
	IdleTimeout time.Duration `yaml:"idle_timeout"` // IdleTimeout is how long keep-alive connections stay open.
}

type MonitoringConfig struct {
	Address string `yaml:"address"`
}

var errMissingDatabase = errors.New("database host and name are required")

// bindings maps configuration keys onto the environment variables that override them.
var bindings = map[string]string{
	"env":                      "APP_ENV",
	"postgres.host":            "DB_HOST",
	"postgres.port":            "DB_PORT",
	"postgres.user":            "DB_USERNAME",
	"postgres.password":        "DB_PASSWORD",
	"postgres.db_name":         "DB_NAME",
	"http_server.address":      "HTTP_ADDRESS",
	"http_server.timeout":      "HTTP_TIMEOUT",
	"http_server.idle_timeout": "HTTP_IDLE_TIMEOUT",
	"monitoring.address":       "MONITORING_ADDRESS",
}

// Load reads the optional YAML file named by CONFIG_PATH, then applies environment overrides.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	vpr := viper.New()

	defTimeout := 4
	defIdleTimeout := 60
	vpr.SetDefault("env", "local")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("http_server.address", ":8080")
	vpr.SetDefault("http_server.timeout", time.Duration(defTimeout)*time.Second)
	vpr.SetDefault("http_server.idle_timeout", time.Duration(defIdleTimeout)*time.Second)
	vpr.SetDefault("monitoring.address", ":8081")

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for key, env := range bindings {
		if err := vpr.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		HTTPServer: HTTPServerConfig{
			Address:     vpr.GetString("http_server.address"),
			Timeout:     vpr.GetDuration("http_server.timeout"),
			IdleTimeout: vpr.GetDuration("http_server.idle_timeout"),
		},
		Monitoring: MonitoringConfig{
			Address: vpr.GetString("monitoring.address"),
		},
	}

	if cfg.Postgres.Host == "" || cfg.Postgres.Dbname == "" {
		return nil, errMissingDatabase
	}

	return cfg, nil
}

// MustLoad is like Load but panics when the configuration cannot be built.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}
