package model

import "time"

// Config is the complete configuration for an analysis run.
type Config struct {
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Extractors ExtractorsConfig `yaml:"extractors" mapstructure:"extractors"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// PipelineConfig controls the orchestrator.
type PipelineConfig struct {
	EnableParallelProcessing   bool    `yaml:"enable_parallel_processing" mapstructure:"enable_parallel_processing"`
	MaxConcurrentAnalyses      int     `yaml:"max_concurrent_analyses" mapstructure:"max_concurrent_analyses"`
	PerformanceMode            string  `yaml:"performance_mode" mapstructure:"performance_mode"` // fast, balanced, thorough
	CacheResults               bool    `yaml:"cache_results" mapstructure:"cache_results"`
	AnonymizationRiskThreshold float64 `yaml:"anonymization_risk_threshold" mapstructure:"anonymization_risk_threshold"`
	TopFindings                int     `yaml:"top_findings" mapstructure:"top_findings"`
	MaxDocumentBytes           int     `yaml:"max_document_bytes" mapstructure:"max_document_bytes"`
}

// ExtractorsConfig controls span extractor collaborators.
type ExtractorsConfig struct {
	EnableBuiltin     bool          `yaml:"enable_builtin" mapstructure:"enable_builtin"`
	RemoteEndpoints   []string      `yaml:"remote_endpoints" mapstructure:"remote_endpoints"`
	RemoteTimeout     time.Duration `yaml:"remote_timeout" mapstructure:"remote_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Language          string        `yaml:"language" mapstructure:"language"`
}

// CacheConfig controls the stage-result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level         string `yaml:"level" mapstructure:"level"`
	Format        string `yaml:"format" mapstructure:"format"` // text or json
	IncludeCaller bool   `yaml:"include_caller" mapstructure:"include_caller"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// Performance modes.
const (
	ModeFast     = "fast"
	ModeBalanced = "balanced"
	ModeThorough = "thorough"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			EnableParallelProcessing:   true,
			MaxConcurrentAnalyses:      4,
			PerformanceMode:            ModeBalanced,
			CacheResults:               true,
			AnonymizationRiskThreshold: 0.01,
			TopFindings:                10,
			MaxDocumentBytes:           2_000_000,
		},
		Extractors: ExtractorsConfig{
			EnableBuiltin:     true,
			RemoteTimeout:     10 * time.Second,
			RequestsPerSecond: 5,
			Language:          "en",
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
