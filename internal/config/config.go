package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Order    OrderConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level    string
	Encoding string
}

type OrderConfig struct {
	TxTimeout        time.Duration
	MaxRetryAttempts int
	AmountTolerance  decimal.Decimal
	StrictReferences bool
}

type MetricsConfig struct {
	Enabled bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "salesdesk")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "salesdesk")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
	v.SetDefault("ORDER_TX_TIMEOUT", "5s")
	v.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)
	v.SetDefault("ORDER_AMOUNT_TOLERANCE", "0.01")
	v.SetDefault("ORDER_STRICT_REFERENCES", true)
	v.SetDefault("METRICS_ENABLED", true)
}

// Load reads configuration from the environment only.
func Load() (*Config, error) {
	return FromViper(viper.New())
}

// FromViper builds a Config from v after applying defaults and binding the
// environment. Values read into v from a config file win over defaults but
// lose to environment variables.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	readTimeout, err := duration(v, "SERVER_READ_TIMEOUT")
	if err != nil {
		return nil, err
	}
	writeTimeout, err := duration(v, "SERVER_WRITE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	connMaxLifetime, err := duration(v, "DB_CONN_MAX_LIFETIME")
	if err != nil {
		return nil, err
	}
	txTimeout, err := duration(v, "ORDER_TX_TIMEOUT")
	if err != nil {
		return nil, err
	}

	tolerance, err := decimal.NewFromString(v.GetString("ORDER_AMOUNT_TOLERANCE"))
	if err != nil {
		return nil, fmt.Errorf("parsing ORDER_AMOUNT_TOLERANCE: %w", err)
	}
	if tolerance.IsNegative() {
		return nil, fmt.Errorf("ORDER_AMOUNT_TOLERANCE must not be negative")
	}

	maxRetry := v.GetInt("ORDER_MAX_RETRY_ATTEMPTS")
	if maxRetry < 1 {
		return nil, fmt.Errorf("ORDER_MAX_RETRY_ATTEMPTS must be at least 1")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("SERVER_PORT"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
		Order: OrderConfig{
			TxTimeout:        txTimeout,
			MaxRetryAttempts: maxRetry,
			AmountTolerance:  tolerance,
			StrictReferences: v.GetBool("ORDER_STRICT_REFERENCES"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
