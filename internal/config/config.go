package config

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var (
	cfg     *APIConfig
	loadErr error
	once    sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	DB             DBConfig             `xml:"DB"`
	Logging        LoggingConfig        `xml:"LOGGING"`
	Embed          EmbedConfig          `xml:"EMBED"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
	Tracing        TracingConfig        `xml:"TRACING"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port           int      `xml:"PORT"`
	Host           string   `xml:"HOST"`
	Path           string   `xml:"PATH"`
	TimeZone       string   `xml:"TIME_ZONE"`
	AllowedOrigins []string `xml:"ALLOWED_ORIGINS>ORIGIN"`
}

// AuthenticationConfig holds authentication settings for coach-only routes.
type AuthenticationConfig struct {
	EnableTokenAuth bool   `xml:"ENABLE_TOKEN_AUTH"`
	AccessSecret    string `xml:"ACCESS_SECRET"`
	SessionTimeout  int    `xml:"SESSION_TIMEOUT"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize  bool         `xml:"INITIALIZE"`
	SeedCatalog bool         `xml:"SEED_CATALOG"`
	Host        string       `xml:"HOST"`
	Port        int          `xml:"PORT"`
	Driver      string       `xml:"DRIVER"`
	SSLMode     string       `xml:"SSL_MODE"`
	Names       DBNames      `xml:"NAMES"`
	Username    string       `xml:"USERNAME"`
	Password    DBPassword   `xml:"PASSWORD"`
	Pool        DBPoolConfig `xml:"POOL"`
}

// DBNames holds the names defined in the DB section.
type DBNames struct {
	FEEDBACK string `xml:"FEEDBACK,attr"`
}

// DBPassword holds password details.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// LoggingConfig controls the rotated log files.
type LoggingConfig struct {
	Dir        string `xml:"DIR"`
	Level      string `xml:"LEVEL"`
	MaxSizeMB  int    `xml:"MAX_SIZE_MB"`
	MaxBackups int    `xml:"MAX_BACKUPS"`
	MaxAgeDays int    `xml:"MAX_AGE_DAYS"`
}

// EmbedConfig holds the signing settings for iframe embed links.
type EmbedConfig struct {
	Secret     string `xml:"SECRET"`
	TokenTTL   int    `xml:"TOKEN_TTL_HOURS"`
	PublicBase string `xml:"PUBLIC_BASE_URL"`
}

// RateLimitConfig bounds response submissions per client.
type RateLimitConfig struct {
	RequestsPerMinute int `xml:"REQUESTS_PER_MINUTE"`
	Burst             int `xml:"BURST"`
}

// TracingConfig toggles the stdout span exporter.
type TracingConfig struct {
	Enabled     bool   `xml:"ENABLED,attr"`
	ServiceName string `xml:"SERVICE_NAME"`
}

// LoadConfig loads and parses the XML configuration from the given file.
// A .env file next to the binary is loaded first so FEEDBACK_* variables
// can override secrets.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		_ = godotenv.Load()

		f, err := os.Open(xmlPath)
		if err != nil {
			loadErr = fmt.Errorf("open config: %w", err)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			loadErr = fmt.Errorf("read config: %w", err)
			return
		}

		parsed, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = parsed
	})

	if cfg == nil {
		if loadErr == nil {
			loadErr = os.ErrInvalid
		}
		return nil, loadErr
	}
	return cfg, nil
}

// Parse decodes an XML document, applies defaults and environment overrides.
func Parse(data []byte) (*APIConfig, error) {
	var newCfg APIConfig
	if err := xml.Unmarshal(data, &newCfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	newCfg.applyDefaults()
	newCfg.applyEnv()
	return &newCfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

func (c *APIConfig) applyDefaults() {
	if c.Context.Host == "" {
		c.Context.Host = "0.0.0.0"
	}
	if c.Context.Port == 0 {
		c.Context.Port = 8080
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "postgres"
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 50
	}
	if c.Embed.TokenTTL == 0 {
		c.Embed.TokenTTL = 24 * 14
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 30
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "teamfeedback-api"
	}
}

func (c *APIConfig) applyEnv() {
	if v := os.Getenv("FEEDBACK_DB_PASSWORD"); v != "" {
		c.DB.Password.Value = v
	}
	if v := os.Getenv("FEEDBACK_DB_HOST"); v != "" {
		c.DB.Host = v
	}
	if v := os.Getenv("FEEDBACK_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.DB.Port = port
		}
	}
	if v := os.Getenv("FEEDBACK_EMBED_SECRET"); v != "" {
		c.Embed.Secret = v
	}
	if v := os.Getenv("FEEDBACK_ACCESS_SECRET"); v != "" {
		c.Authentication.AccessSecret = v
	}
	if v := os.Getenv("FEEDBACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Context.Port = port
		}
	}
}

// DSN builds the postgres connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password.Value, d.Names.FEEDBACK, d.SSLMode)
}
