package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	ContactCollection      string `json:"mongo_contact_collection"`
	RegionCollection       string `json:"mongo_region_collection"`
	GroupCollection        string `json:"mongo_group_collection"`
	ImportConfigCollection string `json:"mongo_import_config_collection"`

	// Import configuration
	ImportMaxRows           int   `json:"import_max_rows"`
	ImportMaxFileSize       int64 `json:"import_max_file_size"`
	ImportRateLimit         int   `json:"import_rate_limit"`
	PhoneStructuralFallback bool  `json:"phone_structural_fallback"`

	// Auth configuration
	AdminGroup string `json:"admin_group"`

	// Tracing configuration
	TracingEnabled     bool    `json:"tracing_enabled"`
	TracingEndpoint    string  `json:"tracing_endpoint"`
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	maxRows, err := strconv.Atoi(getEnvOrDefault("IMPORT_MAX_ROWS", "5000"))
	if err != nil || maxRows <= 0 {
		return fmt.Errorf("invalid IMPORT_MAX_ROWS: %q", os.Getenv("IMPORT_MAX_ROWS"))
	}

	maxFileSize, err := strconv.ParseInt(getEnvOrDefault("IMPORT_MAX_FILE_SIZE", "10485760"), 10, 64)
	if err != nil || maxFileSize <= 0 {
		return fmt.Errorf("invalid IMPORT_MAX_FILE_SIZE: %q", os.Getenv("IMPORT_MAX_FILE_SIZE"))
	}

	rateLimit, err := strconv.Atoi(getEnvOrDefault("IMPORT_RATE_LIMIT", "10"))
	if err != nil || rateLimit < 0 {
		return fmt.Errorf("invalid IMPORT_RATE_LIMIT: %q", os.Getenv("IMPORT_RATE_LIMIT"))
	}

	structuralFallback, err := strconv.ParseBool(getEnvOrDefault("PHONE_STRUCTURAL_FALLBACK", "true"))
	if err != nil {
		return fmt.Errorf("invalid PHONE_STRUCTURAL_FALLBACK: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("TRACING_SAMPLE_RATIO", "1"), 64)
	if err != nil || sampleRatio < 0 || sampleRatio > 1 {
		return fmt.Errorf("invalid TRACING_SAMPLE_RATIO: %q", os.Getenv("TRACING_SAMPLE_RATIO"))
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "contacts"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		ContactCollection:      getEnvOrDefault("MONGODB_CONTACT_COLLECTION", "contacts"),
		RegionCollection:       getEnvOrDefault("MONGODB_REGION_COLLECTION", "regions"),
		GroupCollection:        getEnvOrDefault("MONGODB_GROUP_COLLECTION", "groups"),
		ImportConfigCollection: getEnvOrDefault("MONGODB_IMPORT_CONFIG_COLLECTION", "import_configs"),

		// Import configuration
		ImportMaxRows:           maxRows,
		ImportMaxFileSize:       maxFileSize,
		ImportRateLimit:         rateLimit,
		PhoneStructuralFallback: structuralFallback,

		AdminGroup: getEnvOrDefault("ADMIN_GROUP", "contacts:admin"),

		TracingEnabled:     tracingEnabled,
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: sampleRatio,
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
