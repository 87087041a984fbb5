package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Rollbar RollbarConfig
	Billing BillingConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider       string `mapstructure:"provider"`
	Region         string `mapstructure:"region"`
	SendgridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromAddress    string `mapstructure:"from_address"`
	FromName       string `mapstructure:"from_name"`
	FrontendURL    string `mapstructure:"frontend_url"`
}

// RollbarConfig holds error reporting settings. Reporting is off when Token is empty.
type RollbarConfig struct {
	Token       string `mapstructure:"token"`
	Environment string `mapstructure:"environment"`
	CodeVersion string `mapstructure:"code_version"`
}

// Enabled reports whether a token is configured.
func (r *RollbarConfig) Enabled() bool {
	return r.Token != ""
}

// BillingConfig holds invoicing and declaration settings.
type BillingConfig struct {
	DefaultTauxTVA       float64       `mapstructure:"default_taux_tva"`
	PaymentTermDays      int           `mapstructure:"payment_term_days"`
	CotisationRate       float64       `mapstructure:"cotisation_rate"`
	FormationRate        float64       `mapstructure:"formation_rate"`
	OverdueSweepInterval time.Duration `mapstructure:"overdue_sweep_interval"`
	NotifyConcurrency    int           `mapstructure:"notify_concurrency"`
	IssuerName           string        `mapstructure:"issuer_name"`
	IssuerAddress        string        `mapstructure:"issuer_address"`
	IssuerSiret          string        `mapstructure:"issuer_siret"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from a local .env file (if any) and environment
// variables with the EDULINK_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("EDULINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "edulink")
	v.SetDefault("db.password", "edulink_secret")
	v.SetDefault("db.name", "edulink_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "edulink")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-3")
	v.SetDefault("s3.bucket", "edulink-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 900)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-3")
	v.SetDefault("email.sendgrid_api_key", "")
	v.SetDefault("email.from_address", "noreply@edulink.fr")
	v.SetDefault("email.from_name", "EduLink")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Rollbar defaults (disabled without token)
	v.SetDefault("rollbar.token", "")
	v.SetDefault("rollbar.environment", "development")
	v.SetDefault("rollbar.code_version", "")

	// Billing defaults
	v.SetDefault("billing.default_taux_tva", 20.0)
	v.SetDefault("billing.payment_term_days", 30)
	v.SetDefault("billing.cotisation_rate", 0.22)
	v.SetDefault("billing.formation_rate", 0.002)
	v.SetDefault("billing.overdue_sweep_interval", "1h")
	v.SetDefault("billing.notify_concurrency", 4)
	v.SetDefault("billing.issuer_name", "EduLink SAS")
	v.SetDefault("billing.issuer_address", "")
	v.SetDefault("billing.issuer_siret", "")

	envBindings := map[string]string{
		"server.port":                    "EDULINK_SERVER_PORT",
		"server.read_timeout":            "EDULINK_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "EDULINK_SERVER_WRITE_TIMEOUT",
		"server.environment":             "EDULINK_SERVER_ENVIRONMENT",
		"db.host":                        "EDULINK_DB_HOST",
		"db.port":                        "EDULINK_DB_PORT",
		"db.user":                        "EDULINK_DB_USER",
		"db.password":                    "EDULINK_DB_PASSWORD",
		"db.name":                        "EDULINK_DB_NAME",
		"db.sslmode":                     "EDULINK_DB_SSLMODE",
		"db.max_open":                    "EDULINK_DB_MAX_OPEN",
		"db.max_idle":                    "EDULINK_DB_MAX_IDLE",
		"jwt.secret":                     "EDULINK_JWT_SECRET",
		"jwt.access_expiry":              "EDULINK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "EDULINK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "EDULINK_JWT_ISSUER",
		"s3.region":                      "EDULINK_S3_REGION",
		"s3.bucket":                      "EDULINK_S3_BUCKET",
		"s3.endpoint":                    "EDULINK_S3_ENDPOINT",
		"s3.access_key":                  "EDULINK_S3_ACCESS_KEY",
		"s3.secret_key":                  "EDULINK_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "EDULINK_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "EDULINK_S3_PRESIGN_EXPIRY",
		"log.level":                      "EDULINK_LOG_LEVEL",
		"log.format":                     "EDULINK_LOG_FORMAT",
		"cors.allowed_origins":           "EDULINK_CORS_ALLOWED_ORIGINS",
		"email.provider":                 "EDULINK_EMAIL_PROVIDER",
		"email.region":                   "EDULINK_EMAIL_REGION",
		"email.sendgrid_api_key":         "EDULINK_EMAIL_SENDGRID_API_KEY",
		"email.from_address":             "EDULINK_EMAIL_FROM_ADDRESS",
		"email.from_name":                "EDULINK_EMAIL_FROM_NAME",
		"email.frontend_url":             "EDULINK_EMAIL_FRONTEND_URL",
		"rollbar.token":                  "EDULINK_ROLLBAR_TOKEN",
		"rollbar.environment":            "EDULINK_ROLLBAR_ENVIRONMENT",
		"rollbar.code_version":           "EDULINK_ROLLBAR_CODE_VERSION",
		"billing.default_taux_tva":       "EDULINK_BILLING_DEFAULT_TAUX_TVA",
		"billing.payment_term_days":      "EDULINK_BILLING_PAYMENT_TERM_DAYS",
		"billing.cotisation_rate":        "EDULINK_BILLING_COTISATION_RATE",
		"billing.formation_rate":         "EDULINK_BILLING_FORMATION_RATE",
		"billing.overdue_sweep_interval": "EDULINK_BILLING_OVERDUE_SWEEP_INTERVAL",
		"billing.notify_concurrency":     "EDULINK_BILLING_NOTIFY_CONCURRENCY",
		"billing.issuer_name":            "EDULINK_BILLING_ISSUER_NAME",
		"billing.issuer_address":         "EDULINK_BILLING_ISSUER_ADDRESS",
		"billing.issuer_siret":           "EDULINK_BILLING_ISSUER_SIRET",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS hosts set PORT; it wins unless EDULINK_SERVER_PORT is set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EDULINK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:       v.GetString("email.provider"),
		Region:         v.GetString("email.region"),
		SendgridAPIKey: v.GetString("email.sendgrid_api_key"),
		FromAddress:    v.GetString("email.from_address"),
		FromName:       v.GetString("email.from_name"),
		FrontendURL:    v.GetString("email.frontend_url"),
	}
	cfg.Rollbar = RollbarConfig{
		Token:       v.GetString("rollbar.token"),
		Environment: v.GetString("rollbar.environment"),
		CodeVersion: v.GetString("rollbar.code_version"),
	}
	cfg.Billing = BillingConfig{
		DefaultTauxTVA:       v.GetFloat64("billing.default_taux_tva"),
		PaymentTermDays:      v.GetInt("billing.payment_term_days"),
		CotisationRate:       v.GetFloat64("billing.cotisation_rate"),
		FormationRate:        v.GetFloat64("billing.formation_rate"),
		OverdueSweepInterval: v.GetDuration("billing.overdue_sweep_interval"),
		NotifyConcurrency:    v.GetInt("billing.notify_concurrency"),
		IssuerName:           v.GetString("billing.issuer_name"),
		IssuerAddress:        v.GetString("billing.issuer_address"),
		IssuerSiret:          v.GetString("billing.issuer_siret"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Email.Provider {
	case "noop", "ses":
	case "sendgrid":
		if c.Email.SendgridAPIKey == "" {
			return fmt.Errorf("config: email.sendgrid_api_key is required for the sendgrid provider")
		}
	default:
		return fmt.Errorf("config: unknown email provider %q", c.Email.Provider)
	}
	if c.Billing.CotisationRate < 0 || c.Billing.FormationRate < 0 || c.Billing.DefaultTauxTVA < 0 {
		return fmt.Errorf("config: billing rates must not be negative")
	}
	if c.Server.Environment == "production" && c.JWT.Secret == "change-me-in-production" {
		return fmt.Errorf("config: jwt.secret must be set in production")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
