package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr string

	// DB_DSN selects MySQL; empty falls back to embedded sqlite at SQLitePath.
	DBDSN      string
	SQLitePath string

	// REDIS_ADDR enables the analytics dashboard cache; empty disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// AI provider
	AIProvider    string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModels  []string
	OllamaBaseURL string
	OllamaModel   string

	ChatHistoryWindow int

	// rabbitMQ safety alerts
	RabbitURL        string
	RabbitAlertQueue string
}

// DefaultGeminiModels is the ordered fallback list: each identifier is tried
// in sequence until one produces a reply.
var DefaultGeminiModels = []string{
	"gemini-2.5-flash",
	"gemini-flash-latest",
	"gemini-2.5-pro",
	"gemini-pro-latest",
}

func Load() Config {
	addr := os.Getenv("PORT")
	if addr == "" {
		addr = "8080"
	}
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "mindfulai.db"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	aiProvider := os.Getenv("AI_PROVIDER")
	if aiProvider == "" {
		aiProvider = "gemini"
	}

	geminiBaseURL := os.Getenv("GEMINI_BASE_URL")
	if geminiBaseURL == "" {
		geminiBaseURL = "https://generativelanguage.googleapis.com"
	}

	geminiModels := DefaultGeminiModels
	if v := os.Getenv("GEMINI_MODELS"); v != "" {
		var models []string
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		if len(models) > 0 {
			geminiModels = models
		}
	}

	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "llama3:latest"
	}

	// Most recent N conversation turns forwarded to the model.
	window := 10
	if v := os.Getenv("CHAT_HISTORY_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			window = n
		}
	}

	rabbitQueue := os.Getenv("RABBIT_ALERT_QUEUE")
	if rabbitQueue == "" {
		rabbitQueue = "safety_alerts"
	}

	return Config{
		Addr: addr,

		DBDSN:      os.Getenv("DB_DSN"),
		SQLitePath: sqlitePath,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		AIProvider:    aiProvider,
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: geminiBaseURL,
		GeminiModels:  geminiModels,
		OllamaBaseURL: ollamaBaseURL,
		OllamaModel:   ollamaModel,

		ChatHistoryWindow: window,

		RabbitURL:        os.Getenv("RABBIT_URL"),
		RabbitAlertQueue: rabbitQueue,
	}
}
