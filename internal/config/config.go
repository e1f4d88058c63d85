package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config はサービス全体の設定をまとめる。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Speech SpeechConfig
	Store  StoreConfig
	Log    LogConfig
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig(ai)
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Speech: speech,
		Store:  store,
		Log:    loadLogConfig(),
	}, nil
}

// ServerConfig はHTTPサーバの設定。
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// ":8080" や "127.0.0.1:8080" の形式もそのまま受け付ける。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig は文章生成モデルの設定。
type AIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float64
	MaxTokens   *int
	Timeout     time.Duration
}

// Enabled は必要な資格情報が揃っているかを返す。揃っていなければデモモードで動く。
func (c AIConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// NewChatModel は設定からチャットモデルを生成する。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ToolCallingChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY または OPENAI_MODEL が未設定です")
	}

	modelConfig := &einoopenai.ChatModelConfig{
		APIKey: c.APIKey,
		Model:  c.Model,
	}

	if c.BaseURL != "" {
		modelConfig.BaseURL = c.BaseURL
	}

	if c.Temperature != nil {
		temp := float32(*c.Temperature)
		modelConfig.Temperature = &temp
	}

	if c.MaxTokens != nil {
		maxTokens := *c.MaxTokens
		modelConfig.MaxCompletionTokens = &maxTokens
	}

	if c.Timeout > 0 {
		modelConfig.Timeout = c.Timeout
	} else {
		modelConfig.Timeout = 60 * time.Second
	}

	return einoopenai.NewChatModel(ctx, modelConfig)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("OPENAI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("OPENAI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeout, err := parseDurationEnv("AI_TIMEOUT", 30*time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Timeout:     timeout,
	}, nil
}

// SpeechConfig は音声認識の設定。生成モデルと同じAPIキーを既定で使い回す。
type SpeechConfig struct {
	APIKey   string
	Model    string
	Language string
	Timeout  time.Duration
	Enabled  bool
}

func loadSpeechConfig(ai AIConfig) (SpeechConfig, error) {
	timeout, err := parseDurationEnv("SPEECH_TIMEOUT", 30*time.Second)
	if err != nil {
		return SpeechConfig{}, err
	}

	apiKey := strings.TrimSpace(os.Getenv("SPEECH_API_KEY"))
	if apiKey == "" {
		apiKey = ai.APIKey
	}

	return SpeechConfig{
		APIKey:   apiKey,
		Model:    getEnvOrDefault("WHISPER_MODEL", "whisper-1"),
		Language: getEnvOrDefault("SPEECH_LANGUAGE", "ja"),
		Timeout:  timeout,
		Enabled:  apiKey != "",
	}, nil
}

// StoreConfig はセッションストアのTTL設定。
type StoreConfig struct {
	SessionTTL    time.Duration
	PurgeInterval time.Duration
}

func loadStoreConfig() (StoreConfig, error) {
	ttl, err := parseDurationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return StoreConfig{}, err
	}

	purge, err := parseDurationEnv("SESSION_PURGE_INTERVAL", 10*time.Minute)
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{SessionTTL: ttl, PurgeInterval: purge}, nil
}

// LogConfig はログ出力の設定。
type LogConfig struct {
	FilePath string
	Prod     bool
}

func loadLogConfig() LogConfig {
	return LogConfig{
		FilePath: getEnvOrDefault("LOG_FILE", ""),
		Prod:     strings.EqualFold(getEnvOrDefault("APP_ENV", "development"), "production"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
