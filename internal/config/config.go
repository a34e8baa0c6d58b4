package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	LLM       LLMConfig       `mapstructure:"llm"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// LLMConfig contains all language-model integration settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
}

// RateLimitConfig controls the per-user admission limits on protected
// operations. Disabled limiting swaps every limiter for a no-op.
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`

	DeckCreationPerMinute      int `mapstructure:"deck_creation_per_minute"      validate:"gte=0"`
	FlashcardCreationPerMinute int `mapstructure:"flashcard_creation_per_minute" validate:"gte=0"`
	GenerationPerHour          int `mapstructure:"generation_per_hour"           validate:"gte=0"`

	RegistryTTLMinutes int `mapstructure:"registry_ttl_minutes" validate:"gte=0"`
	RegistryMaxEntries int `mapstructure:"registry_max_entries" validate:"gte=0"`
}
