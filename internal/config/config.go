package config

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 3306
	DefaultTable    = "wp_posts"
	DefaultRows     = 1000
	DefaultAuthorID = 2
	DefaultPostType = "product"
	DefaultGUIDBase = "https://eklix.tk/proizvod/"
	DefaultLogLevel = "info"
)

type Config struct {
	Host       string `json:"host" yaml:"host" mapstructure:"host"`
	Port       int    `json:"port" yaml:"port" mapstructure:"port"`
	User       string `json:"user" yaml:"user" mapstructure:"user"`
	Password   string `json:"password" yaml:"password" mapstructure:"password"`
	Database   string `json:"database" yaml:"database" mapstructure:"database"`
	Table      string `json:"table" yaml:"table" mapstructure:"table"`
	Rows       int    `json:"rows" yaml:"rows" mapstructure:"rows"`
	AutoCreate bool   `json:"auto_create" yaml:"auto_create" mapstructure:"auto_create"`
	Clean      bool   `json:"clean" yaml:"clean" mapstructure:"clean"`
	AuthorID   int64  `json:"author_id" yaml:"author_id" mapstructure:"author_id"`
	PostType   string `json:"post_type" yaml:"post_type" mapstructure:"post_type"`
	GUIDBase   string `json:"guid_base" yaml:"guid_base" mapstructure:"guid_base"`
	LogLevel   string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Retry      Retry  `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// Retry controls the connection backoff. The wait stays at InitialWait for
// Threshold failed attempts, then doubles on every further failure until it
// passes MaxWait.
type Retry struct {
	Threshold   int           `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
	InitialWait time.Duration `json:"initial_wait" yaml:"initial_wait" mapstructure:"initial_wait"`
	MaxWait     time.Duration `json:"max_wait" yaml:"max_wait" mapstructure:"max_wait"`
}

// envBindings maps config keys to the environment variables the tool has
// always honored.
var envBindings = map[string]string{
	"host":        "SQL_HOST",
	"port":        "DB_PORT",
	"user":        "DB_USER",
	"password":    "DB_PASS",
	"database":    "DB_NAME",
	"table":       "DB_TABLE",
	"rows":        "DB_ROWS",
	"auto_create": "DB_AUTO_CREATE",
	"log_level":   "LOG_LEVEL",
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("table", DefaultTable)
	v.SetDefault("rows", DefaultRows)
	v.SetDefault("auto_create", false)
	v.SetDefault("clean", true)
	v.SetDefault("author_id", DefaultAuthorID)
	v.SetDefault("post_type", DefaultPostType)
	v.SetDefault("guid_base", DefaultGUIDBase)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("retry.threshold", 5)
	v.SetDefault("retry.initial_wait", time.Second)
	v.SetDefault("retry.max_wait", 60*time.Second)

	for key, env := range envBindings {
		// BindEnv only fails when no key is given.
		_ = v.BindEnv(key, env)
	}
}

// LoadFrom decodes the resolved settings of v into a Config, filling in
// defaults for anything left blank.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.PostType == "" {
		cfg.PostType = DefaultPostType
	}
	if cfg.GUIDBase == "" {
		cfg.GUIDBase = DefaultGUIDBase
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.User == "" {
		return fmt.Errorf("%w: you have to specify a database user either by environment variable (DB_USER) or pass one in with the -u flag", ErrInvalid)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: you have to specify a database password either by environment variable (DB_PASS) or pass one in with the -p flag", ErrInvalid)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: you have to specify a database name either by environment variable (DB_NAME) or pass one in with the -d flag", ErrInvalid)
	}
	if c.Port == 0 {
		return fmt.Errorf("%w: you have to specify a database port either by environment variable (DB_PORT) or pass one in with the -P flag", ErrInvalid)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d is out of range", ErrInvalid, c.Port)
	}
	if c.Rows < 0 {
		return fmt.Errorf("%w: number of rows cannot be negative, got %d", ErrInvalid, c.Rows)
	}
	if !validIdentifier.MatchString(c.Table) {
		return fmt.Errorf("%w: invalid table name: %s", ErrInvalid, c.Table)
	}
	if strings.ContainsRune(c.Database, 0) {
		return fmt.Errorf("%w: database name contains a NUL byte", ErrInvalid)
	}
	if c.Retry.Threshold < 0 {
		return fmt.Errorf("%w: retry.threshold cannot be negative", ErrInvalid)
	}
	if c.Retry.InitialWait <= 0 {
		return fmt.Errorf("%w: retry.initial_wait must be positive", ErrInvalid)
	}
	if c.Retry.MaxWait < c.Retry.InitialWait {
		return fmt.Errorf("%w: retry.max_wait must not be below retry.initial_wait", ErrInvalid)
	}

	return nil
}

// Addr returns the host:port pair the driver dials.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "********"
	}
	return c
}
