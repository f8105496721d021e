// Package config loads the configuration from the environment, an optional
// .env file and an optional config file.
package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/security"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Security configures the request filter and the security headers.
type Security struct {
	Disabled            bool     `env:"DISABLE_SECURITY_FILTER"`
	ExcludedPaths       []string `env:"SECURITY_EXCLUDED_PATHS"`
	MaxBodyBytes        int64    `env:"SECURITY_MAX_BODY_BYTES" validate:"min=1"`
	TrustForwardedProto bool     `env:"TRUST_FORWARDED_PROTO"`
}

// Postgres holds the connection parameters for PostgreSQL. It is only
// used when Host is set.
type Postgres struct {
	Host     string `env:"DB_HOST"`
	Port     int    `env:"DB_PORT" validate:"min=1,max=65535"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// DSN returns the connection string for the postgres driver.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}

type Config struct {
	APIURL           string   `env:"API_URL" validate:"required,url"`
	Port             int      `env:"PORT" validate:"min=1,max=65535"`
	GinMode          string   `env:"GIN_MODE" validate:"oneof=debug release test"`
	LogFormat        string   `env:"LOG_FORMAT" validate:"omitempty,oneof=human json"`
	DBFile           string   `env:"DB_FILE" validate:"required"`
	Postgres         Postgres `env:"-"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS"`
	EnablePprof      bool     `env:"ENABLE_PPROF"`
	Security         Security `env:"-"`

	// RateLimit uses the ulule/limiter format, e.g. 300-M.
	// An empty value disables rate limiting.
	RateLimit        string   `env:"RATE_LIMIT"`
	IncomeTypeNames  []string `env:"INCOME_TYPE_NAMES"`
	ExpenseTypeNames []string `env:"EXPENSE_TYPE_NAMES"`

	URL *url.URL `env:"-" validate:"-"` // Parsed APIURL
}

var defaults = map[string]any{
	"API_URL":                 "",
	"PORT":                    8080,
	"GIN_MODE":                "release",
	"LOG_FORMAT":              "",
	"DB_FILE":                 "data/gorm.db",
	"DB_HOST":                 "",
	"DB_PORT":                 5432,
	"DB_USER":                 "",
	"DB_PASSWORD":             "",
	"DB_NAME":                 "dds",
	"DB_SSLMODE":              "disable",
	"CORS_ALLOW_ORIGINS":      "",
	"ENABLE_PPROF":            false,
	"DISABLE_SECURITY_FILTER": false,
	"SECURITY_EXCLUDED_PATHS": strings.Join(security.DefaultExcludedPaths, ","),
	"SECURITY_MAX_BODY_BYTES": 1 << 20,
	"TRUST_FORWARDED_PROTO":   false,
	"RATE_LIMIT":              "300-M",
	"INCOME_TYPE_NAMES":       "Пополнение,Replenishment",
	"EXPENSE_TYPE_NAMES":      "Списание,Write-off",
}

// Load reads the configuration. Environment variables take precedence
// over the config file, which takes precedence over the defaults.
//
// A .env file in the working directory is loaded into the environment
// first, without overriding variables that are already set.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// An empty RATE_LIMIT disables the limiter, so empty
	// values must not fall back to the defaults
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	c := &Config{
		APIURL:    v.GetString("API_URL"),
		Port:      v.GetInt("PORT"),
		GinMode:   v.GetString("GIN_MODE"),
		LogFormat: v.GetString("LOG_FORMAT"),
		DBFile:    v.GetString("DB_FILE"),
		Postgres: Postgres{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		CORSAllowOrigins: strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
		EnablePprof:      v.GetBool("ENABLE_PPROF"),
		Security: Security{
			Disabled:            v.GetBool("DISABLE_SECURITY_FILTER"),
			ExcludedPaths:       list(v.GetString("SECURITY_EXCLUDED_PATHS")),
			MaxBodyBytes:        v.GetInt64("SECURITY_MAX_BODY_BYTES"),
			TrustForwardedProto: v.GetBool("TRUST_FORWARDED_PROTO"),
		},
		RateLimit:        strings.TrimSpace(v.GetString("RATE_LIMIT")),
		IncomeTypeNames:  list(v.GetString("INCOME_TYPE_NAMES")),
		ExpenseTypeNames: list(v.GetString("EXPENSE_TYPE_NAMES")),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the configuration and parses the API URL.
func (c *Config) Validate() error {
	validate := validator.New()

	// Name fields by their environment variable in error messages
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("env")
		if name == "-" {
			return f.Name
		}
		return name
	})

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", httputil.ValidationErrorsToText(err))
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid configuration: API_URL: %w", err)
	}
	c.URL = u

	return nil
}

// UsePostgres reports if PostgreSQL is configured as the database.
func (c *Config) UsePostgres() bool {
	return c.Postgres.Host != ""
}

// list splits a comma separated value and drops empty entries.
func list(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}

	return values
}
