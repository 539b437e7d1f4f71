package config

import "os"

// Config holds runtime configuration, read once at startup
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string
	JWTSecret     string
	// CatalogDir optionally adds assessment definitions on top of the
	// built-in catalog. Every file must pass validation or startup fails.
	CatalogDir string
}

func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "mindhaven"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		CatalogDir:    os.Getenv("CATALOG_DIR"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
