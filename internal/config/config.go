package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the storage backend.
// For sqlite the URL is a file path or ":memory:".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url"    validate:"required"`
}

// CatalogConfig points at the questionnaire definition.
// An empty path selects the catalog embedded in the binary.
type CatalogConfig struct {
	Path string `mapstructure:"path" validate:"omitempty,file"`
}

// AnalyticsConfig sizes the asynchronous event tracker.
type AnalyticsConfig struct {
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}

// ScoringConfig overrides the compatibility level bands.
// Zero values keep the defaults.
type ScoringConfig struct {
	ExcellentThreshold float64 `mapstructure:"excellent_threshold" validate:"gte=0,lte=100"`
	GoodThreshold      float64 `mapstructure:"good_threshold"      validate:"gte=0,lte=100"`
	FairThreshold      float64 `mapstructure:"fair_threshold"      validate:"gte=0,lte=100"`
}
