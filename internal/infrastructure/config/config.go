package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Notion   NotionConfig   `mapstructure:"notion"`
	Holidays HolidayConfig  `mapstructure:"holidays"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Client   ClientConfig   `mapstructure:"client"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	Timezone    string `mapstructure:"timezone"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DatabaseConfig holds the holiday store connection. URL wins over the
// discrete fields when set (the Supabase connection string).
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	HolidayTTL time.Duration `mapstructure:"holiday_ttl"`
}

// AuthConfig holds the shared password and token settings.
// Password may be plain text or a bcrypt hash.
type AuthConfig struct {
	Password    string        `mapstructure:"password"`
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

// NotionConfig holds Notion API configuration
type NotionConfig struct {
	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	Version            string        `mapstructure:"version"`
	TodoDatabaseID     string        `mapstructure:"todo_database_id"`
	CalendarDatabaseID string        `mapstructure:"calendar_database_id"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// HolidayConfig holds holiday reference data settings
type HolidayConfig struct {
	State     string `mapstructure:"state"`
	SourceURL string `mapstructure:"source_url"`
	SeedFile  string `mapstructure:"seed_file"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// NotifyConfig holds reminder delivery configuration
type NotifyConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	TopicARN string `mapstructure:"topic_arn"`
	Region   string `mapstructure:"region"`
}

// ClientConfig holds settings for the terminal client and console
type ClientConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TokenFile   string `mapstructure:"token_file"`
	PageSize    int    `mapstructure:"page_size"`
	WeekendDays string `mapstructure:"weekend_days"`
}

// Load loads the full server configuration
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadClient loads configuration for the terminal tools, which do not
// need the server settings to be complete.
func LoadClient() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.Client.PageSize <= 0 {
		return nil, fmt.Errorf("invalid configuration: client page size must be positive")
	}

	return cfg, nil
}

func load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "notion-manager")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.timezone", "Asia/Kuala_Lumpur")

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "postgres")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "30s")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.holiday_ttl", "24h")

	// Auth defaults
	v.SetDefault("auth.password", "akmal")
	v.SetDefault("auth.token_secret", "notion-manager-secret-key-2025")
	v.SetDefault("auth.token_ttl", "24h")

	// Notion defaults
	v.SetDefault("notion.base_url", "https://api.notion.com/v1")
	v.SetDefault("notion.version", "2022-06-28")
	v.SetDefault("notion.timeout", "15s")

	// Holiday defaults
	v.SetDefault("holidays.state", "Kelantan")
	v.SetDefault("holidays.source_url", "https://www.officeholidays.com/countries/malaysia/regional.php")
	v.SetDefault("holidays.seed_file", "holidays.json")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.filename", "")

	// Security defaults
	v.SetDefault("security.cors_allowed_origins", "*")
	v.SetDefault("security.rate_limit_requests", 100)
	v.SetDefault("security.rate_limit_window", "1m")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)

	// Notify defaults
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.topic_arn", "")
	v.SetDefault("notify.region", "ap-southeast-1")

	// Client defaults
	v.SetDefault("client.base_url", "http://localhost:8080/api")
	v.SetDefault("client.token_file", defaultTokenFile())
	v.SetDefault("client.page_size", 20)
	v.SetDefault("client.weekend_days", "friday,saturday")
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "APP_NAME")
	v.BindEnv("app.version", "APP_VERSION")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("app.debug", "APP_DEBUG")
	v.BindEnv("app.timezone", "APP_TIMEZONE")

	// Server
	v.BindEnv("server.port", "SERVER_PORT", "PORT")
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")
	v.BindEnv("server.request_timeout", "SERVER_REQUEST_TIMEOUT")

	// Database
	v.BindEnv("database.url", "DATABASE_URL", "SUPABASE_DB_URL")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.ssl_mode", "DB_SSL_MODE")
	v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")
	v.BindEnv("database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	v.BindEnv("database.conn_max_idle_time", "DB_CONN_MAX_IDLE_TIME")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("redis.holiday_ttl", "REDIS_HOLIDAY_TTL")

	// Auth
	v.BindEnv("auth.password", "APP_PASSWORD")
	v.BindEnv("auth.token_secret", "JWT_SECRET")
	v.BindEnv("auth.token_ttl", "TOKEN_TTL")

	// Notion
	v.BindEnv("notion.api_key", "NOTION_API_KEY")
	v.BindEnv("notion.base_url", "NOTION_BASE_URL")
	v.BindEnv("notion.version", "NOTION_VERSION")
	v.BindEnv("notion.todo_database_id", "DATABASE_ID", "NOTION_TODO_DATABASE_ID")
	v.BindEnv("notion.calendar_database_id", "CALENDAR_DATABASE_ID")
	v.BindEnv("notion.timeout", "NOTION_TIMEOUT")

	// Holidays
	v.BindEnv("holidays.state", "HOLIDAY_STATE")
	v.BindEnv("holidays.source_url", "HOLIDAY_SOURCE_URL")
	v.BindEnv("holidays.seed_file", "HOLIDAY_SEED_FILE")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.format", "LOG_FORMAT")
	v.BindEnv("logger.output", "LOG_OUTPUT")
	v.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	v.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Metrics
	v.BindEnv("metrics.enabled", "ENABLE_METRICS")

	// Notify
	v.BindEnv("notify.enabled", "NOTIFY_ENABLED")
	v.BindEnv("notify.topic_arn", "TOPIC_ARN")
	v.BindEnv("notify.region", "AWS_REGION")

	// Client
	v.BindEnv("client.base_url", "NOTION_MANAGER_URL")
	v.BindEnv("client.token_file", "NOTION_MANAGER_TOKEN_FILE")
	v.BindEnv("client.page_size", "CLIENT_PAGE_SIZE")
	v.BindEnv("client.weekend_days", "CLIENT_WEEKEND_DAYS")
}

func validateConfig(cfg *Config) error {
	if cfg.Auth.TokenSecret == "" {
		return fmt.Errorf("token secret is required")
	}

	if cfg.Auth.Password == "" {
		return fmt.Errorf("app password is required")
	}

	if cfg.Notion.APIKey == "" {
		return fmt.Errorf("notion api key is required")
	}

	if cfg.Notion.TodoDatabaseID == "" || cfg.Notion.CalendarDatabaseID == "" {
		return fmt.Errorf("notion todo and calendar database ids are required")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if _, err := cfg.App.Location(); err != nil {
		return err
	}

	return nil
}

// GetDSN returns the database connection string
func (cfg *DatabaseConfig) GetDSN() string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// GetAddr returns the Redis address
func (cfg *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// Location resolves the calendar timezone
func (cfg *AppConfig) Location() (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}

// Weekend parses WeekendDays into weekdays.
func (cfg *ClientConfig) Weekend() ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}

	var days []time.Weekday
	for _, part := range strings.Split(cfg.WeekendDays, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, ok := names[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, d)
	}
	return days, nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".notion-manager-token.json"
	}
	return filepath.Join(dir, "notion-manager", "token.json")
}
