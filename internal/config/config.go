package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Booking    BookingConfig    `toml:"booking"`
	Pagination PaginationConfig `toml:"pagination"`
}

// ServerConfig HTTP-сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к БД
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | sqlite
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	SQLitePath      string `toml:"sqlite_path"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	LockTimeoutMs   int    `toml:"lock_timeout_ms"`   // ожидание блокировки слотов при бронировании, 0 - умолчание СУБД
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig повторы бронирования при временных ошибках БД
type BookingConfig struct {
	MaxAttempts    int `toml:"max_attempts"`
	RetryBackoffMs int `toml:"retry_backoff_ms"`
}

// PaginationConfig ограничения списков слотов
type PaginationConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// Load читает TOML-файл, применяет умолчания и проверяет значения
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          string(sqlbuilder.Postgres),
			Host:            "localhost",
			Port:            5432,
			DBName:          "smc_timeslots",
			SSLMode:         "disable",
			SQLitePath:      "timeslots.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "timeslot_service",
		},
		Booking: BookingConfig{
			MaxAttempts:    3,
			RetryBackoffMs: 50,
		},
		Pagination: PaginationConfig{
			DefaultLimit: 100,
			MaxLimit:     500,
		},
	}
}

// applyDefaults заполняет обнуленные в файле значения
func (c *Config) applyDefaults() {
	def := Default()

	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Booking.MaxAttempts == 0 {
		c.Booking.MaxAttempts = def.Booking.MaxAttempts
	}
	if c.Pagination.DefaultLimit == 0 {
		c.Pagination.DefaultLimit = def.Pagination.DefaultLimit
	}
	if c.Pagination.MaxLimit == 0 {
		c.Pagination.MaxLimit = def.Pagination.MaxLimit
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	dialect, err := sqlbuilder.ParseDialect(c.Database.Driver)
	if err != nil {
		return fmt.Errorf("%w: database.driver: %v", ErrInvalidConfig, err)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch dialect {
	case sqlbuilder.Postgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case sqlbuilder.SQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("%w: database.sqlite_path is required for sqlite", ErrInvalidConfig)
		}
	}

	if c.Database.LockTimeoutMs < 0 {
		return fmt.Errorf("%w: database.lock_timeout_ms must not be negative", ErrInvalidConfig)
	}
	if c.Booking.MaxAttempts < 1 {
		return fmt.Errorf("%w: booking.max_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.Booking.RetryBackoffMs < 0 {
		return fmt.Errorf("%w: booking.retry_backoff_ms must not be negative", ErrInvalidConfig)
	}
	if c.Pagination.DefaultLimit < 1 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return fmt.Errorf("%w: pagination: default_limit=%d, max_limit=%d",
			ErrInvalidConfig, c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}

	return nil
}

// Dialect диалект SQL выбранного драйвера. Вызывать после Validate.
func (d DatabaseConfig) Dialect() sqlbuilder.Dialect {
	dialect, _ := sqlbuilder.ParseDialect(d.Driver)
	return dialect
}

// DSN строка подключения для database/sql
func (d DatabaseConfig) DSN() string {
	if d.Dialect() == sqlbuilder.SQLite {
		return sqlbuilder.SQLiteDSN(d.SQLitePath, d.BusyTimeout())
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LockTimeout ожидание блокировки строк слотов
func (d DatabaseConfig) LockTimeout() time.Duration {
	return time.Duration(d.LockTimeoutMs) * time.Millisecond
}

// BusyTimeout ожидание занятой базы sqlite; без явного lock_timeout_ms 5 секунд
func (d DatabaseConfig) BusyTimeout() time.Duration {
	if d.LockTimeoutMs > 0 {
		return d.LockTimeout()
	}
	return 5 * time.Second
}

// RetryBackoff базовая пауза между попытками бронирования
func (b BookingConfig) RetryBackoff() time.Duration {
	return time.Duration(b.RetryBackoffMs) * time.Millisecond
}
