package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// app config: AI provider, stores and the voice-provider session surface
type Config struct {
	Provider string

	MongoURI  string
	MongoDB   string
	RedisAddr string // optional; lifecycle events disabled when empty

	JWTSecret string

	VoiceURL         string // websocket endpoint of the hosted voice provider
	VoiceGenerateRef string // assistant/workflow target for generate calls
	VoicePracticeRef string // assistant target for practice calls

	// fixed post-call redirect delays: short on success, longer on
	// failure, the user is never left stranded
	RedirectDelay      time.Duration
	RedirectFailDelay  time.Duration
	SessionIdleTimeout time.Duration
}

// loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Provider:           getEnvOrDefault("AI_PROVIDER", "gemini"),
		MongoURI:           getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnvOrDefault("MONGO_DB", "ai_interview"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		JWTSecret:          getEnvOrDefault("JWT_SECRET", "dev"),
		VoiceURL:           os.Getenv("VOICE_WS_URL"),
		VoiceGenerateRef:   os.Getenv("VOICE_GENERATE_REF"),
		VoicePracticeRef:   os.Getenv("VOICE_PRACTICE_REF"),
		RedirectDelay:      getEnvDuration("REDIRECT_DELAY", 1*time.Second),
		RedirectFailDelay:  getEnvDuration("REDIRECT_FAIL_DELAY", 3*time.Second),
		SessionIdleTimeout: getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + cfg.Provider + ". Currently supported: gemini")
	}
	// Gemini credential validation is handled by gemini.NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
