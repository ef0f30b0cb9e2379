package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Storage      StorageConfig      `yaml:"storage"`
	Fetch        FetchConfig        `yaml:"fetch"`
	Extractor    ExtractorConfig    `yaml:"extractor"`
	LLM          LLMConfig          `yaml:"llm"`
	Summarizer   SummarizerConfig   `yaml:"summarizer"`
	SummaryQuota SummaryQuotaConfig `yaml:"summary_quota"`
	// WarmupURLs 는 캐시 워밍 커맨드(루트 main)가 미리 요약해 둘 문서 목록이다.
	WarmupURLs []string `yaml:"warmup_urls"`
}

type ServerConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig selects the summary store backend.
// Driver is one of "mongo", "sqlite" or "memory".
type StorageConfig struct {
	Driver      string `yaml:"driver"`
	MongoURI    string `yaml:"mongo_uri"`
	MongoDBName string `yaml:"mongo_db_name"`
	SQLitePath  string `yaml:"sqlite_path"`
}

// FetchConfig controls how article HTML is retrieved.
// Mode "http" uses a plain HTTP client, "browser" renders the page with headless chrome.
type FetchConfig struct {
	Mode           string `yaml:"mode"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	MaxRetries     int    `yaml:"max_retries"`
	ChromePath     string `yaml:"chrome_path"`
}

// ExtractorConfig 는 본문 추출 전략을 정의한다.
// ContentSelectors 가 매칭되지 않으면 문서 전체 텍스트로 대체한다.
type ExtractorConfig struct {
	Strategy         string   `yaml:"strategy"`
	ContentSelectors []string `yaml:"content_selectors"`
	StripSelectors   []string `yaml:"strip_selectors"`
}

type LLMConfig struct {
	Provider       string `yaml:"provider"`
	ModelName      string `yaml:"model_name"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxOutputToken int    `yaml:"max_output_tokens"`
}

type SummarizerConfig struct {
	ChunkSize        int  `yaml:"chunk_size"`
	ChunkOverlap     int  `yaml:"chunk_overlap"`
	MaxChunks        int  `yaml:"max_chunks"`
	MaxRefinements   int  `yaml:"max_refinements"`
	StrictLength     bool `yaml:"strict_length"`
	DefaultWordLimit int  `yaml:"default_word_limit"`
}

// SummaryQuotaConfig 는 요약용 LLM 호출에 대한 속도/일일 한도를 정의한다.
type SummaryQuotaConfig struct {
	// RequestsPerMinute 는 요약용 LLM 호출에 대한 분당 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 요약용 LLM 호출에 대한 일일 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerDay int `yaml:"requests_per_day"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

// Load reads a yaml config file, fills defaults and applies environment overrides.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes raw yaml into an AppConfig.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Storage.MongoURI = uri
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "mongo"
	}
	if c.Storage.MongoDBName == "" {
		c.Storage.MongoDBName = "wikisummary"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join("data", "summaries.db")
	}
	if c.Fetch.Mode == "" {
		c.Fetch.Mode = "http"
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = 15
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "wiki-summary/1.0 (+https://github.com/wiki-summary)"
	}
	if c.Fetch.MaxRetries < 0 {
		c.Fetch.MaxRetries = 0
	}
	if c.Extractor.Strategy == "" {
		c.Extractor.Strategy = "selector"
	}
	if len(c.Extractor.ContentSelectors) == 0 {
		c.Extractor.ContentSelectors = []string{"#mw-content-text"}
	}
	if len(c.Extractor.StripSelectors) == 0 {
		c.Extractor.StripSelectors = []string{"script", "style", "nav", "footer", "header", "aside", "form"}
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "huggingface"
	}
	if c.LLM.ModelName == "" {
		c.LLM.ModelName = defaultModelFor(c.LLM.Provider)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.LLM.MaxOutputToken <= 0 {
		c.LLM.MaxOutputToken = 1024
	}
	if c.Summarizer.ChunkSize <= 0 {
		c.Summarizer.ChunkSize = 1000
	}
	if c.Summarizer.ChunkOverlap <= 0 {
		c.Summarizer.ChunkOverlap = c.Summarizer.ChunkSize / 10
	}
	if c.Summarizer.MaxChunks <= 0 {
		c.Summarizer.MaxChunks = 10
	}
	if c.Summarizer.MaxRefinements <= 0 {
		c.Summarizer.MaxRefinements = 5
	}
	if c.Summarizer.DefaultWordLimit <= 0 {
		c.Summarizer.DefaultWordLimit = 100
	}
}

func (c *AppConfig) validate() error {
	switch c.Storage.Driver {
	case "mongo", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	switch c.Fetch.Mode {
	case "http", "browser":
	default:
		return fmt.Errorf("unsupported fetch mode: %s", c.Fetch.Mode)
	}
	if c.Summarizer.ChunkOverlap >= c.Summarizer.ChunkSize {
		return fmt.Errorf("summarizer.chunk_overlap (%d) must be smaller than chunk_size (%d)",
			c.Summarizer.ChunkOverlap, c.Summarizer.ChunkSize)
	}
	return nil
}

func defaultModelFor(provider string) string {
	switch provider {
	case "google":
		return "gemini-2.5-flash"
	case "anthropic":
		return "claude-3-7-sonnet-latest"
	case "openai":
		return "gpt-4o-mini"
	default:
		return "facebook/bart-large-cnn"
	}
}

// FetchTimeout returns the configured page fetch timeout.
func (c AppConfig) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// LLMTimeout returns the configured per-call inference timeout.
func (c AppConfig) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
