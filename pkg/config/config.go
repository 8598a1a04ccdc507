package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		ChartURL        string        `yaml:"chart_url"`
		QuoteSummaryURL string        `yaml:"quote_summary_url"`
		Timeout         time.Duration `yaml:"timeout"`
		UserAgent       string        `yaml:"user_agent"`
		Benchmark       string        `yaml:"benchmark"`
		Retry           struct {
			MaxAttempts int           `yaml:"max_attempts"`
			Delay       time.Duration `yaml:"delay"`
		} `yaml:"retry"`
	} `yaml:"market"`
	Cache struct {
		Type  string        `yaml:"type"` // "memory" or "redis"
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"rate_limit"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		Linger       time.Duration `yaml:"linger"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("CHARTPULSE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("CHART_URL"); v != "" {
		c.Market.ChartURL = v
	}
	if v := os.Getenv("BENCHMARK"); v != "" {
		c.Market.Benchmark = v
	}
	if v := os.Getenv("CACHE_TYPE"); v != "" {
		c.Cache.Type = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Market.ChartURL == "" {
		c.Market.ChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.Market.QuoteSummaryURL == "" {
		c.Market.QuoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
	}
	if c.Market.Timeout <= 0 {
		c.Market.Timeout = 30 * time.Second
	}
	if c.Market.Retry.MaxAttempts <= 0 {
		c.Market.Retry.MaxAttempts = 3
	}
	if c.Market.Retry.Delay <= 0 {
		c.Market.Retry.Delay = time.Second
	}
	if c.Cache.Type == "" {
		c.Cache.Type = "memory"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = time.Hour
	}
	if c.RateLimit.Capacity <= 0 {
		c.RateLimit.Capacity = 5
	}
	if c.RateLimit.RefillPerSec <= 0 {
		c.RateLimit.RefillPerSec = 2
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Cache.Type != "memory" && c.Cache.Type != "redis" {
		return fmt.Errorf("cache.type must be 'memory' or 'redis', got '%s'", c.Cache.Type)
	}
	if c.Cache.Type == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when cache.type is redis")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required when kafka is enabled")
		}
	}
	return nil
}
