package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	LogDir string

	VLMBaseURL string
	VLMAPIKey  string
	VLMModel   string

	TranslateURL string

	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	AnalyzerBackend  string

	HFToken      string
	ImageModel   string
	ImageBackend string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	KnowledgeFile      string
	RateLimitPerMinute int
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		Port:   getEnv("PORT", "8000"),
		LogDir: getEnv("LOG_DIR", "./logs"),

		VLMBaseURL: strings.TrimRight(getEnv("VLM_BASE_URL", "https://router.huggingface.co/v1"), "/"),
		VLMAPIKey:  getEnv("VLM_API_KEY", ""),
		VLMModel:   getEnv("VLM_MODEL", "Qwen/Qwen2.5-VL-7B-Instruct"),

		TranslateURL: getEnv("TRANSLATE_URL", ""),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),
		AnalyzerBackend:  getEnv("ANALYZER_BACKEND", "vlm"),

		HFToken:      getEnv("HF_TOKEN", ""),
		ImageModel:   getEnv("IMAGE_MODEL", "black-forest-labs/FLUX.1-schnell"),
		ImageBackend: getEnv("IMAGE_BACKEND", "hf"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "zeus-uploads"),
		MinIOUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", ""),

		KnowledgeFile:      getEnv("KNOWLEDGE_FILE", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 20),
	}
}

// MinIOEnabled reports whether uploads go to object storage instead of data URLs.
func (c Config) MinIOEnabled() bool {
	return c.MinIOEndpoint != ""
}

// DBEnabled reports whether analysis history is persisted.
func (c Config) DBEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
