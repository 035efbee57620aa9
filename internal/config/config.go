package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitMQURI   string
	EventExchange string
	MinioEndpoint string
	MinioAccess   string
	MinioSecret   string
	MinioUseSSL   bool
	ScanBucket    string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	JWTSecret     string
	QuizSize      int
	AttemptTTL    time.Duration
	MaxUploadMB   int64
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		GinMode:       getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "eye_ai_db"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PWD", ""),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),
		RabbitMQURI:   getEnvOrDefault("RABBITMQ_URI", ""),
		EventExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", ""),
		MinioEndpoint: getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccess:   getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecret:   getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:   getEnvOrDefault("MINIO_USE_SSL", "false") == "true",
		ScanBucket:    getEnvOrDefault("MINIO_SCAN_BUCKET", "eye-scans"),
		OpenAIKey:     getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),
		JWTSecret:     getEnvOrDefault("SECRET_KEY", "change_this_in_prod"),
		QuizSize:      getEnvIntOrDefault("QUIZ_SIZE", 7),
		AttemptTTL:    getEnvDurationOrDefault("QUIZ_ATTEMPT_TTL", 30*time.Minute),
		MaxUploadMB:   int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 16)),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
