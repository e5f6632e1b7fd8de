package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	LLM      LLMConfig
	Detector DetectorConfig
	Store    StoreConfig
	Pipeline PipelineConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr       string
	UploadDir      string
	StaticDir      string
	MaxUploadBytes int64
}

// OCRConfig holds recognition configuration
type OCRConfig struct {
	Tesseract           string
	TesseractLang       string
	TessdataDir         string
	EnableTSVConfidence bool
	MaxImageEdge        int
	ArtifactCacheDir    string
}

// LLMConfig holds semantic-extractor configuration
type LLMConfig struct {
	Enabled bool
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DetectorConfig holds the object-detection scorer configuration. An empty
// Binary disables the scorer entirely.
type DetectorConfig struct {
	Binary   string
	ModelDir string
	Timeout  time.Duration
}

// StoreConfig holds record-store configuration
type StoreConfig struct {
	DataDir string
}

// PipelineConfig holds pipeline tuning knobs
type PipelineConfig struct {
	// DOBPlaceholders marks DOB values produced by a known OCR/LLM misread;
	// a matching DOB is replaced by the raw-text date token when one exists.
	DOBPlaceholders []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
			StaticDir:      getEnv("STATIC_DIR", "./static"),
			MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 16<<20),
		},
		OCR: OCRConfig{
			Tesseract:           getEnv("TESSERACT", "tesseract"),
			TesseractLang:       getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:         getEnv("TESSDATA_PREFIX", ""),
			EnableTSVConfidence: getEnvAsBool("OCR_TSV_CONFIDENCE", false),
			MaxImageEdge:        getEnvAsInt("OCR_MAX_IMAGE_EDGE", 2200),
			ArtifactCacheDir:    getEnv("ARTIFACT_CACHE_DIR", "./tmp"),
		},
		LLM: LLMConfig{
			Enabled: getEnvAsBool("LLM_ENABLED", true),
			BaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:   getEnv("OLLAMA_MODEL", "llama3"),
			Timeout: getEnvAsDuration("OLLAMA_TIMEOUT", 45*time.Second),
		},
		Detector: DetectorConfig{
			Binary:   getEnv("DETECTOR_BIN", ""),
			ModelDir: getEnv("DETECTOR_MODEL_DIR", "./trained_models"),
			Timeout:  getEnvAsDuration("DETECTOR_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Pipeline: PipelineConfig{
			DOBPlaceholders: getEnvAsList("DOB_PLACEHOLDERS", []string{"1008"}),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_BYTES must be positive", ErrInvalidInput)
	}
	if c.Store.DataDir == "" {
		return NewAppError("CONFIG_ERROR", "DATA_DIR is required", ErrInvalidInput)
	}
	if c.LLM.Enabled && c.LLM.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OLLAMA_BASE_URL is required when LLM_ENABLED", ErrInvalidInput)
	}
	return nil
}
