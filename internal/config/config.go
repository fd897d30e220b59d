package config

import (
	"os"
	"strings"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Persistence
	DataFile     string
	KnowledgeDir string
	VectorDBPath string

	// Auth. Leaving the secret empty disables bearer-token auth, which is
	// the default for a local single-user workspace.
	AuthJWTSecret string

	// CORS
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DataFile:     getEnv("DATA_FILE", "data/projects.json"),
		KnowledgeDir: getEnv("KNOWLEDGE_DIR", "loop/knowledge"),
		VectorDBPath: getEnv("VECTOR_DB_PATH", "data/chroma"),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
