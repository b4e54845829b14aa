package model

import "time"

// Config is the full application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	FactCheck FactCheckConfig `yaml:"factcheck"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Batch     BatchConfig     `yaml:"batch"`
	Output    OutputConfig    `yaml:"output"`
}

// APIConfig configures the chat-completion endpoint.
type APIConfig struct {
	// Key is the environment-provided default credential. A key stored
	// by explicit user action takes priority over it.
	Key string `yaml:"key,omitempty"`

	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`

	// MaxTokens caps the output budget for fact-check requests. Summary
	// and similar-sources requests carry fixed budgets of their own.
	MaxTokens int `yaml:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// FactCheckConfig configures claim extraction.
type FactCheckConfig struct {
	MaxClaims int `yaml:"max_claims"`
}

// HTTPConfig configures page fetching for the snapshot producer.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// CacheConfig configures snapshot caching.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// BatchConfig configures parallel processing of URL lists.
type BatchConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults. The API defaults target
// an OpenAI-compatible endpoint; both model and base URL are overridable.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Model:     "neysa-qwen3-vl-30b-a3b",
			BaseURL:   "https://api.pipeshift.com/api/v0",
			Timeout:   60 * time.Second,
			MaxTokens: 5000,
		},
		FactCheck: FactCheckConfig{
			MaxClaims: 5,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Pagelens/0.1 (+https://github.com/ovoitenko/pagelens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Batch: BatchConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
