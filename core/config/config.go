package config

import (
	"errors"
	"reflect"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/core/fetch"
	"catalog-sync/core/logger"
	"catalog-sync/core/schedule"
	"catalog-sync/core/server"
	"catalog-sync/core/snapshot"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/inventory"
	"catalog-sync/feature/priority"
	"catalog-sync/feature/sources"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the ops HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Fetch holds retry and timeout settings for remote feeds.
	Fetch fetch.Config `mapstructure:"fetch"`
	// Snapshot selects where the last successful feed of each source is kept.
	Snapshot snapshot.Config `mapstructure:"snapshot"`
	// Schedule holds the trigger settings of both jobs.
	Schedule schedule.Config `mapstructure:"schedule"`
	// Priority holds the source priority cache settings.
	Priority priority.Config `mapstructure:"priority"`
	// Catalog lists the sources of the catalog job.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Inventory holds the inventory job settings.
	Inventory inventory.Config `mapstructure:"inventory"`
	// Sources holds the per-source connection settings, keyed by source name.
	// Only the config file can populate it.
	Sources map[string]sources.Config `mapstructure:"sources"`
}

// LoadConfig loads configuration from config.yaml, environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// Watch reloads the configuration whenever config.yaml under path changes.
// It returns false when there is no config file to watch.
func Watch(path string, onChange func(*Config, error)) (bool, error) {
	v, err := newViper(path)
	if err != nil {
		return false, err
	}
	if v.ConfigFileUsed() == "" {
		return false, nil
	}

	v.OnConfigChange(func(fsnotify.Event) {
		onChange(unmarshal(v))
	})
	v.WatchConfig()
	return true, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
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

		switch field.Type.Kind() {
		case reflect.Struct:
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		case reflect.Map, reflect.Ptr:
			// A registered default would shadow the file's nested keys.
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
