package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// WebhookSecret is the shared secret expected in the X-Webhook-Secret header.
	// An empty value disables the check.
	WebhookSecret string `mapstructure:"WEBHOOK_SECRET"`
	// HTTPTimeoutSeconds bounds every outbound API call.
	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT_SECONDS" default:"30"`

	// Database holds the import log store configuration.
	Database DatabaseConfig `mapstructure:",squash"`

	// Redis holds the optional lock store configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Shopify holds the source platform API configuration.
	Shopify ShopifyConfig `mapstructure:",squash"`

	// Cybake holds the target system API configuration.
	Cybake CybakeConfig `mapstructure:",squash"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// Driver selects the GORM dialector: "postgres" or "sqlite".
	Driver string `mapstructure:"DB_DRIVER" default:"postgres"`
	// URL is the DSN for postgres or the file path for sqlite.
	URL string `mapstructure:"DATABASE_URL" required:"true"`
}

// RedisConfig holds the Redis connection used for in-flight import locks.
type RedisConfig struct {
	// URL is in the format redis://[:password@]host[:port][/database]. Empty disables locking.
	URL string `mapstructure:"REDIS_URL"`
	// LockTTLSeconds is how long an import lock is held at most.
	LockTTLSeconds int `mapstructure:"IMPORT_LOCK_TTL_SECONDS" default:"120"`
}

// ShopifyConfig holds the credentials for the Shopify Admin API.
type ShopifyConfig struct {
	// Store is the shop domain, e.g. my-shop.myshopify.com.
	Store string `mapstructure:"SHOPIFY_STORE" required:"true"`
	// AccessToken is the Admin API access token.
	AccessToken string `mapstructure:"SHOPIFY_ACCESS_TOKEN" required:"true"`
	// APIVersion is the Admin API version used for GraphQL calls.
	APIVersion string `mapstructure:"SHOPIFY_API_VERSION" default:"2025-01"`
	// BaseURL overrides https://<Store> (used for local stubs).
	BaseURL string `mapstructure:"SHOPIFY_BASE_URL"`
	// ClientID is the app client id used by the credential probe.
	ClientID string `mapstructure:"SHOPIFY_CLIENT_ID"`
	// ClientSecret is the app client secret used by the credential probe.
	ClientSecret string `mapstructure:"SHOPIFY_CLIENT_SECRET"`
}

// AdminURL returns the shop root URL without a trailing slash.
func (c ShopifyConfig) AdminURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "https://" + c.Store
}

// GraphQLURL returns the Admin GraphQL endpoint for the given API version.
func (c ShopifyConfig) GraphQLURL(version string) string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.AdminURL(), version)
}

// CybakeConfig holds the credentials for the Cybake import API.
type CybakeConfig struct {
	// URL is the base URL of the Cybake API.
	URL string `mapstructure:"CYBAKE_API_URL" required:"true"`
	// APIKey is sent as x-api-key.
	APIKey string `mapstructure:"CYBAKE_API_KEY" required:"true"`
	// APIVersion is sent as x-api-version.
	APIVersion string `mapstructure:"CYBAKE_API_VERSION" default:"2.0"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.Database.Driver != "postgres" && config.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", config.Database.Driver)
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
