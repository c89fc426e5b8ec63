package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Azure   AzureOpenAIConfig
	Ai      AIConfig
	Kb      KBConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

// AzureOpenAIConfig holds the generation backend credentials.
// All four fields are required at boot when azure is the LLM provider.
type AzureOpenAIConfig struct {
	Endpoint       string
	APIKey         string
	APIVersion     string
	DeploymentName string
}

type AIConfig struct {
	LLMProvider       string // "azure", "ollama", "huggingface"
	LLMModel          string
	EmbeddingProvider string // "ollama", "gemini" or "huggingface"
	OllamaBaseURL     string
	OllamaModel       string
	GeminiAPIKey      string
	HuggingFaceKey    string
	IntentModel       string
	EmotionModel      string
}

type KBConfig struct {
	Folder    string
	IndexPath string
	TopK      int
}

type SessionConfig struct {
	TTL      time.Duration
	MaxTurns int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Azure: AzureOpenAIConfig{
			Endpoint:       getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:         getEnv("AZURE_OPENAI_KEY", ""),
			APIVersion:     getEnv("AZURE_API_VERSION", ""),
			DeploymentName: getEnv("AZURE_OPENAI_DEPLOYMENT_NAME", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "azure"),
			LLMModel:          getEnv("LLM_MODEL", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFaceKey:    getEnv("HUGGINGFACE_API_KEY", ""),
			IntentModel:       getEnv("NLU_INTENT_MODEL", "bhadresh-savani/distilbert-base-uncased-emotion"),
			EmotionModel:      getEnv("NLU_EMOTION_MODEL", "j-hartmann/emotion-english-distilroberta-base"),
		},
		Kb: KBConfig{
			Folder:    getEnv("KB_FOLDER", "kb"),
			IndexPath: getEnv("KB_INDEX_PATH", "kb/kb_index.json"),
			TopK:      getEnvAsInt("KB_TOP_K", 2),
		},
		Session: SessionConfig{
			TTL:      getEnvAsDuration("SESSION_TTL", 1*time.Hour),
			MaxTurns: getEnvAsInt("SESSION_MAX_TURNS", 40),
		},
	}
}

// Validate fails fast on missing generation credentials. The service cannot
// answer a single request without them, so boot must stop here rather than
// surface the gap on the first chat call.
func (c *Config) Validate() error {
	if c.Ai.LLMProvider != "azure" {
		return nil
	}

	var missing []string
	if c.Azure.Endpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	if c.Azure.APIKey == "" {
		missing = append(missing, "AZURE_OPENAI_KEY")
	}
	if c.Azure.APIVersion == "" {
		missing = append(missing, "AZURE_API_VERSION")
	}
	if c.Azure.DeploymentName == "" {
		missing = append(missing, "AZURE_OPENAI_DEPLOYMENT_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
