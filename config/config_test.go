package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pricewatcher/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "data/product_list.txt", config.ProductListPath)
	assert.Equal(t, 3, config.UnitSize)
	assert.Equal(t, "#priceChart", config.ChartSelector)
	assert.Equal(t, "h1.ts.dividing.big.header", config.TitleSelector)
	assert.Equal(t, 10*time.Second, config.WaitTimeout)
	assert.True(t, config.Headless)
	assert.Empty(t, config.RedisAddr)

	// Test with environment variables
	t.Setenv("SLACK_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL", "C123")
	t.Setenv("UNIT_SIZE", "5")
	t.Setenv("WAIT_TIMEOUT_SECONDS", "3")
	t.Setenv("HEADLESS", "false")
	t.Setenv("REDIS_ADDR", "redis.example.com:6379")

	config, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "xoxb-test", config.SlackToken)
	assert.Equal(t, "C123", config.SlackChannel)
	assert.Equal(t, 5, config.UnitSize)
	assert.Equal(t, 3*time.Second, config.WaitTimeout)
	assert.False(t, config.Headless)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricewatcher.yaml")
	yaml := `
product_list: lists/uniqlo.txt
unit_size: 4
message:
  header: "Watched:"
extraction:
  title_remove: ["div.sub.header"]
  wait_timeout_seconds: 20
browser:
  headless: false
redis:
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	// Environment wins over the file
	t.Setenv("UNIT_SIZE", "2")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "lists/uniqlo.txt", config.ProductListPath)
	assert.Equal(t, 2, config.UnitSize)
	assert.Equal(t, "Watched:", config.MessageHeader)
	assert.Equal(t, []string{"div.sub.header"}, config.TitleRemove)
	assert.Equal(t, 20*time.Second, config.WaitTimeout)
	assert.False(t, config.Headless)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	// Untouched keys keep their defaults
	assert.Equal(t, DefaultChartSelector, config.ChartSelector)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unit_size: [1, 2"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	list := filepath.Join(t.TempDir(), "product_list.txt")
	require.NoError(t, os.WriteFile(list, []byte("https://example.com/p/1\n"), 0o644))

	valid := func() *Config {
		c := Default()
		c.SlackToken = "xoxb-test"
		c.SlackChannel = "C123"
		c.ProductListPath = list
		return c
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		target string
	}{
		{"missing token", func(c *Config) { c.SlackToken = "" }, "SLACK_TOKEN"},
		{"missing channel", func(c *Config) { c.SlackChannel = " " }, "SLACK_CHANNEL"},
		{"zero unit size", func(c *Config) { c.UnitSize = 0 }, "UNIT_SIZE"},
		{"missing product list", func(c *Config) { c.ProductListPath = list + ".missing" }, list + ".missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()
			var cfgErr *errors.Error
			require.True(t, stderrors.As(err, &cfgErr))
			assert.Equal(t, errors.ErrorTypeConfiguration, cfgErr.Type)
			assert.Equal(t, tt.target, cfgErr.Target)
			assert.True(t, cfgErr.IsFatal())
		})
	}
}

func TestValidateDryRunSkipsSlack(t *testing.T) {
	list := filepath.Join(t.TempDir(), "product_list.txt")
	require.NoError(t, os.WriteFile(list, nil, 0o644))

	c := Default()
	c.ProductListPath = list
	c.DryRun = true
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsMalformedEnv(t *testing.T) {
	list := filepath.Join(t.TempDir(), "product_list.txt")
	require.NoError(t, os.WriteFile(list, nil, 0o644))

	t.Setenv("SLACK_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL", "C123")
	t.Setenv("PRODUCT_LIST", list)
	t.Setenv("UNIT_SIZE", "abc")

	config, err := LoadConfig("")
	require.NoError(t, err)
	// The default stays in place until Validate reports the bad value
	assert.Equal(t, DefaultUnitSize, config.UnitSize)

	err = config.Validate()
	var cfgErr *errors.Error
	require.True(t, stderrors.As(err, &cfgErr))
	assert.Equal(t, errors.ErrorTypeConfiguration, cfgErr.Type)
	assert.Equal(t, "UNIT_SIZE", cfgErr.Target)
	assert.Contains(t, cfgErr.Error(), `invalid value "abc"`)
}
