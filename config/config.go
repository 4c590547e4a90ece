package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"sjsage522/pricewatcher/pkg/errors"
)

const (
	DefaultProductList   = "data/product_list.txt"
	DefaultUnitSize      = 3
	DefaultChartSelector = "#priceChart"
	DefaultTitleSelector = "h1.ts.dividing.big.header"
	DefaultMessageHeader = "UNIQLO 關注商品："
	DefaultDatasetScript = `(() => {
	const chart = window.priceChart;
	if (!chart || !chart.data || !chart.data.datasets || !chart.data.datasets.length) {
		return null;
	}
	return chart.data.datasets[0].data;
})()`
)

// Config represents the application configuration
type Config struct {
	// Slack configuration
	SlackToken   string
	SlackChannel string

	// Input
	ProductListPath string

	// Extraction
	ChartSelector   string
	TitleSelector   string
	TitleRemove     []string
	DatasetScript   string
	WaitTimeout     time.Duration
	PageLoadTimeout time.Duration

	// Browser
	Headless         bool
	ChromePath       string
	RemoteBrowserURL string

	// Messages
	UnitSize      int
	MessageHeader string
	DryRun        bool

	// Redis stream mirror, disabled when RedisAddr is empty
	RedisAddr      string
	RedisDB        int
	RedisStream    string
	RedisMaxLength int

	// Memcache run lock, disabled when MemcacheAddr is empty
	MemcacheAddr string
	RunLockTTL   time.Duration

	// Metrics push, disabled when PushgatewayURL is empty
	PushgatewayURL string

	// Logging
	LogDir string

	// Environment
	Environment string

	// envErrors holds environment values that could not be parsed
	envErrors []*errors.Error
}

// fileConfig mirrors the YAML file; absent keys leave defaults untouched.
type fileConfig struct {
	ProductList string `yaml:"product_list"`
	UnitSize    int    `yaml:"unit_size"`
	Message     struct {
		Header string `yaml:"header"`
	} `yaml:"message"`
	Extraction struct {
		ChartSelector      string   `yaml:"chart_selector"`
		TitleSelector      string   `yaml:"title_selector"`
		TitleRemove        []string `yaml:"title_remove"`
		DatasetScript      string   `yaml:"dataset_script"`
		WaitTimeoutSeconds int      `yaml:"wait_timeout_seconds"`
		PageLoadSeconds    int      `yaml:"page_load_timeout_seconds"`
	} `yaml:"extraction"`
	Browser struct {
		Headless   *bool  `yaml:"headless"`
		ChromePath string `yaml:"chrome_path"`
		RemoteURL  string `yaml:"remote_url"`
	} `yaml:"browser"`
	Redis struct {
		Addr      string `yaml:"addr"`
		DB        int    `yaml:"db"`
		Stream    string `yaml:"stream"`
		MaxLength int    `yaml:"max_length"`
	} `yaml:"redis"`
	Memcache struct {
		Addr              string `yaml:"addr"`
		RunLockTTLSeconds int    `yaml:"run_lock_ttl_seconds"`
	} `yaml:"memcache"`
	PushgatewayURL string `yaml:"pushgateway_url"`
	LogDir         string `yaml:"log_dir"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		ProductListPath: DefaultProductList,
		ChartSelector:   DefaultChartSelector,
		TitleSelector:   DefaultTitleSelector,
		DatasetScript:   DefaultDatasetScript,
		WaitTimeout:     10 * time.Second,
		PageLoadTimeout: 30 * time.Second,
		Headless:        true,
		UnitSize:        DefaultUnitSize,
		MessageHeader:   DefaultMessageHeader,
		RedisStream:     "pricewatcher:digests",
		RedisMaxLength:  1000,
		RunLockTTL:      30 * time.Minute,
		LogDir:          "Logs",
		Environment:     "development",
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file at
// path and then environment variables, in increasing priority.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.ProductListPath, fc.ProductList)
	setInt(&c.UnitSize, fc.UnitSize)
	setString(&c.MessageHeader, fc.Message.Header)
	setString(&c.ChartSelector, fc.Extraction.ChartSelector)
	setString(&c.TitleSelector, fc.Extraction.TitleSelector)
	if len(fc.Extraction.TitleRemove) > 0 {
		c.TitleRemove = fc.Extraction.TitleRemove
	}
	setString(&c.DatasetScript, fc.Extraction.DatasetScript)
	setSeconds(&c.WaitTimeout, fc.Extraction.WaitTimeoutSeconds)
	setSeconds(&c.PageLoadTimeout, fc.Extraction.PageLoadSeconds)
	if fc.Browser.Headless != nil {
		c.Headless = *fc.Browser.Headless
	}
	setString(&c.ChromePath, fc.Browser.ChromePath)
	setString(&c.RemoteBrowserURL, fc.Browser.RemoteURL)
	setString(&c.RedisAddr, fc.Redis.Addr)
	setInt(&c.RedisDB, fc.Redis.DB)
	setString(&c.RedisStream, fc.Redis.Stream)
	setInt(&c.RedisMaxLength, fc.Redis.MaxLength)
	setString(&c.MemcacheAddr, fc.Memcache.Addr)
	setSeconds(&c.RunLockTTL, fc.Memcache.RunLockTTLSeconds)
	setString(&c.PushgatewayURL, fc.PushgatewayURL)
	setString(&c.LogDir, fc.LogDir)

	return nil
}

func (c *Config) applyEnv() {
	c.SlackToken = getEnv("SLACK_TOKEN", c.SlackToken)
	c.SlackChannel = getEnv("SLACK_CHANNEL", c.SlackChannel)
	c.ProductListPath = getEnv("PRODUCT_LIST", c.ProductListPath)
	c.UnitSize = c.envInt("UNIT_SIZE", c.UnitSize)
	c.MessageHeader = getEnv("MESSAGE_HEADER", c.MessageHeader)
	c.ChartSelector = getEnv("CHART_SELECTOR", c.ChartSelector)
	c.TitleSelector = getEnv("TITLE_SELECTOR", c.TitleSelector)
	c.WaitTimeout = c.envSeconds("WAIT_TIMEOUT_SECONDS", c.WaitTimeout)
	c.PageLoadTimeout = c.envSeconds("PAGE_LOAD_TIMEOUT_SECONDS", c.PageLoadTimeout)
	c.Headless = c.envBool("HEADLESS", c.Headless)
	c.ChromePath = getEnv("CHROME_PATH", c.ChromePath)
	c.RemoteBrowserURL = getEnv("REMOTE_BROWSER_URL", c.RemoteBrowserURL)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = c.envInt("REDIS_DB", c.RedisDB)
	c.RedisStream = getEnv("REDIS_STREAM", c.RedisStream)
	c.MemcacheAddr = getEnv("MEMCACHE_ADDR", c.MemcacheAddr)
	c.RunLockTTL = c.envSeconds("RUN_LOCK_TTL_SECONDS", c.RunLockTTL)
	c.PushgatewayURL = getEnv("PUSHGATEWAY_URL", c.PushgatewayURL)
	c.LogDir = getEnv("LOG_DIR", c.LogDir)
	c.Environment = getEnv("PRICEWATCH_ENVIRONMENT", c.Environment)
}

// Validate checks everything a run needs before a browser session is opened
func (c *Config) Validate() error {
	if len(c.envErrors) > 0 {
		return c.envErrors[0]
	}
	if !c.DryRun {
		if strings.TrimSpace(c.SlackToken) == "" {
			return errors.NewConfiguration("SLACK_TOKEN", "environment variable not set")
		}
		if strings.TrimSpace(c.SlackChannel) == "" {
			return errors.NewConfiguration("SLACK_CHANNEL", "environment variable not set")
		}
	}
	if c.UnitSize < 1 {
		return errors.NewConfiguration("UNIT_SIZE", fmt.Sprintf("must be positive, got %d", c.UnitSize))
	}
	if c.WaitTimeout <= 0 || c.PageLoadTimeout <= 0 {
		return errors.NewConfiguration("WAIT_TIMEOUT_SECONDS", "timeouts must be positive")
	}
	if c.ChartSelector == "" || c.TitleSelector == "" || c.DatasetScript == "" {
		return errors.NewConfiguration("extraction", "chart selector, title selector and dataset script are required")
	}

	f, err := os.Open(c.ProductListPath)
	if err != nil {
		return errors.New(errors.ErrorTypeConfiguration, c.ProductListPath, "product list file not readable", err)
	}
	f.Close()

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) envInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.invalidEnv(key, value, err)
		return defaultValue
	}
	return n
}

func (c *Config) envSeconds(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.invalidEnv(key, value, err)
		return defaultValue
	}
	return time.Duration(n) * time.Second
}

func (c *Config) envBool(key string, defaultValue bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		c.invalidEnv(key, value, err)
		return defaultValue
	}
	return b
}

// invalidEnv records an unparsable value; Validate reports it
func (c *Config) invalidEnv(key, value string, err error) {
	c.envErrors = append(c.envErrors,
		errors.New(errors.ErrorTypeConfiguration, key, fmt.Sprintf("invalid value %q", value), err))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setSeconds(dst *time.Duration, v int) {
	if v != 0 {
		*dst = time.Duration(v) * time.Second
	}
}
