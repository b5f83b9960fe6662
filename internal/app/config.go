package app

import (
	"strings"

	"github.com/studyloop/studyloop-backend/internal/logger"
	"github.com/studyloop/studyloop-backend/internal/utils"
)

type Config struct {
	Port          string
	AllowOrigins  []string
	MaxBriefChars int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)
	maxBriefChars := utils.GetEnvAsInt("REPORT_MAX_BRIEF_CHARS", 0, log)

	return Config{
		Port:          port,
		AllowOrigins:  splitOrigins(origins),
		MaxBriefChars: maxBriefChars,
	}
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
