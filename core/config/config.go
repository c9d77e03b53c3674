package config

import (
	"reflect"
	"strings"

	"pvp-pipeline/core/cache"
	"pvp-pipeline/core/database"
	"pvp-pipeline/core/gameapi"
	"pvp-pipeline/core/logger"
	"pvp-pipeline/core/metrics"
	"pvp-pipeline/core/server"
	"pvp-pipeline/core/storage"
	"pvp-pipeline/core/warehouse"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the read-only HTTP API.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the landing zone bucket (S3, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the staging database.
	Database database.Config `mapstructure:"database"`
	// Warehouse holds configuration for the analytical warehouse.
	Warehouse warehouse.Config `mapstructure:"warehouse"`
	// API holds configuration for the remote game API.
	API gameapi.Config `mapstructure:"api"`
	// Pipeline holds tuning for the selection and enrichment run.
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	// Cache holds configuration for the optional token cache.
	Cache cache.Config `mapstructure:"cache"`
	// Metrics holds configuration for the pushgateway.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// PipelineConfig controls character selection and enrichment.
type PipelineConfig struct {
	// Workers is the number of concurrent profile fetches.
	Workers int `mapstructure:"workers" default:"8"`
	// LimitTotal caps the number of selected characters.
	LimitTotal int `mapstructure:"limit_total" default:"500"`
	// Brackets is the comma separated list of eligible brackets.
	Brackets string `mapstructure:"brackets" default:"2v2,3v3"`
	// BracketPriority orders brackets for tie-breaks, primary first.
	BracketPriority string `mapstructure:"bracket_priority" default:"3v3,2v2"`
}

// BracketList returns the eligible brackets.
func (p PipelineConfig) BracketList() []string {
	return splitList(p.Brackets)
}

// PriorityList returns the bracket priority order.
func (p PipelineConfig) PriorityList() []string {
	return splitList(p.BracketPriority)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. API_CLIENT_ID -> api.client_id)
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

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
