package config

import (
	"reflect"
	"strings"

	"moneyball/core/database"
	"moneyball/core/logger"
	"moneyball/core/server"
	"moneyball/core/storage"
	"moneyball/feature/ingest/provider"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SchedulerConfig holds configuration for the periodic update cycle.
type SchedulerConfig struct {
	// Cron is the update schedule in six-field (seconds-first) format.
	Cron string `mapstructure:"cron" default:"0 0 * * * *"`
	// DaysBack is how many past days each cycle re-reads for late results.
	DaysBack int `mapstructure:"days_back" default:"3"`
	// DaysForward is how many future days each cycle reads for schedule changes.
	DaysForward int `mapstructure:"days_forward" default:"7"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the raw payload archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Providers holds configuration for the upstream data providers.
	Providers provider.Config `mapstructure:"providers"`
	// Scheduler holds configuration for the periodic update cycle.
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
