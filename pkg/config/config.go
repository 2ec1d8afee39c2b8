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
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Brokers  []string `yaml:"brokers"`
		Topic    string   `yaml:"topic"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	Cache struct {
		Enabled bool `yaml:"enabled"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		TTL struct {
			Prices    time.Duration `yaml:"prices"`
			Carbon    time.Duration `yaml:"carbon"`
			Analytics time.Duration `yaml:"analytics"`
		} `yaml:"ttl"`
	} `yaml:"cache"`
	Analytics struct {
		// Spike thresholds in GBP/MWh, per price index.
		SpikeThreshold struct {
			System   float64 `yaml:"system"`
			DayAhead float64 `yaml:"dayahead"`
		} `yaml:"spike_threshold"`
		// Peak window as settlement periods, inclusive. 15..38 covers
		// 07:00-19:00 clock time on a 48-period day.
		PeakStartPeriod int `yaml:"peak_start_period"`
		PeakEndPeriod   int `yaml:"peak_end_period"`
	} `yaml:"analytics"`
	Stream struct {
		SendBuffer   int           `yaml:"send_buffer"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		PingInterval time.Duration `yaml:"ping_interval"`
	} `yaml:"stream"`
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

	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Analytics.SpikeThreshold.System == 0 {
		c.Analytics.SpikeThreshold.System = 200
	}
	if c.Analytics.SpikeThreshold.DayAhead == 0 {
		c.Analytics.SpikeThreshold.DayAhead = 150
	}
	if c.Analytics.PeakStartPeriod == 0 {
		c.Analytics.PeakStartPeriod = 15
	}
	if c.Analytics.PeakEndPeriod == 0 {
		c.Analytics.PeakEndPeriod = 38
	}
	if c.Stream.SendBuffer == 0 {
		c.Stream.SendBuffer = 64
	}
	if c.Stream.WriteTimeout == 0 {
		c.Stream.WriteTimeout = 5 * time.Second
	}
	if c.Stream.PingInterval == 0 {
		c.Stream.PingInterval = 30 * time.Second
	}
	if c.Cache.TTL.Prices == 0 {
		c.Cache.TTL.Prices = 60 * time.Second
	}
	if c.Cache.TTL.Carbon == 0 {
		c.Cache.TTL.Carbon = 5 * time.Minute
	}
	if c.Cache.TTL.Analytics == 0 {
		c.Cache.TTL.Analytics = 10 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if c.ClickHouse.Database == "" {
		return fmt.Errorf("clickhouse.database is required")
	}
	if c.Analytics.PeakStartPeriod < 1 || c.Analytics.PeakEndPeriod > 50 ||
		c.Analytics.PeakStartPeriod > c.Analytics.PeakEndPeriod {
		return fmt.Errorf("analytics peak window %d..%d is invalid",
			c.Analytics.PeakStartPeriod, c.Analytics.PeakEndPeriod)
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when brokers are set")
	}
	return nil
}
