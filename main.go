package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sjsage522/pricewatcher/config"
	"sjsage522/pricewatcher/helpers"
	"sjsage522/pricewatcher/internal/browser"
	"sjsage522/pricewatcher/internal/crawler"
	"sjsage522/pricewatcher/internal/digest"
	"sjsage522/pricewatcher/logger"
	"sjsage522/pricewatcher/services/cache"
	"sjsage522/pricewatcher/services/metrics"
	"sjsage522/pricewatcher/services/publisher"
	"sjsage522/pricewatcher/services/worker"
)

const metricsPushTimeout = 10 * time.Second

// options holds command line overrides applied on top of the configuration
type options struct {
	configPath string
	products   string
	unitSize   int
	dryRun     bool
}

func (o options) apply(cfg *config.Config) {
	if o.products != "" {
		cfg.ProductListPath = o.products
	}
	if o.unitSize != 0 {
		cfg.UnitSize = o.unitSize
	}
	if o.dryRun {
		cfg.DryRun = true
	}
}

// openerFactory builds the browser opener for a run
type openerFactory func(cfg *config.Config) browser.Opener

func chromeOpener(cfg *config.Config) browser.Opener {
	return browser.ChromeOpener(browser.Options{
		Headless:        cfg.Headless,
		ExecPath:        cfg.ChromePath,
		RemoteURL:       cfg.RemoteBrowserURL,
		PageLoadTimeout: cfg.PageLoadTimeout,
		TextRemove:      cfg.TitleRemove,
	})
}

func main() {
	// Load environment variables
	godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, chromeOpener)
	stop()

	os.Exit(code)
}

// execute parses args and performs one run, returning the process exit status
func execute(ctx context.Context, args []string, out io.Writer, newOpener openerFactory) int {
	code := 0
	opts := options{}

	rootCmd := &cobra.Command{
		Use:           "pricewatcher",
		Short:         "pricewatcher scrapes product price histories and posts a discount digest to Slack.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			code = run(cmd.Context(), opts, out, newOpener)
		},
	}
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "optional YAML configuration file")
	rootCmd.Flags().StringVar(&opts.products, "products", "", "product list file, one URL per line")
	rootCmd.Flags().IntVar(&opts.unitSize, "unit-size", 0, "products per message")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print messages instead of sending them to Slack")

	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return code
}

// run is a single pass: validate, collect, notify. Only configuration and
// browser start-up failures produce a non-zero status.
func run(ctx context.Context, opts options, out io.Writer, newOpener openerFactory) int {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		logger.Init()
		logger.Default.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}
	opts.apply(cfg)

	if err := logger.InitWithFile(cfg.LogDir); err != nil {
		logger.Default.Warn().Err(err).Msg("Logging to console only")
	}
	defer logger.Close()

	runID := uuid.NewString()
	logger.SetRunID(runID)
	log := logger.Default

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return 1
	}

	urls, err := helpers.ReadURLList(cfg.ProductListPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.ProductListPath).Msg("Failed to read product list")
		return 1
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("products", len(urls)).
		Int("unit_size", cfg.UnitSize).
		Bool("dry_run", cfg.DryRun).
		Msg("Starting run")

	if cfg.MemcacheAddr != "" {
		lock, err := cache.AcquireRunLock(cache.NewMemcacheService(cfg.MemcacheAddr, cache.DefaultTimeout), cache.RunLockKey, runID, cfg.RunLockTTL)
		switch {
		case errors.Is(err, cache.ErrRunInProgress):
			logger.ForCache().Warn().Msg("Another run is in progress, skipping")
			return 0
		case err != nil:
			logger.ForCache().Warn().Err(err).Msg("Run lock unavailable, continuing without it")
		default:
			defer func() {
				if err := lock.Release(); err != nil {
					logger.ForCache().Warn().Err(err).Msg("Failed to release run lock")
				}
			}()
		}
	}

	services := initializeServices(cfg, runID, out)
	defer services.Cleanup()

	extractor := crawler.NewExtractor(crawler.ExtractorConfig{
		Selectors: crawler.Selectors{
			Chart: cfg.ChartSelector,
			Title: cfg.TitleSelector,
		},
		DatasetScript: cfg.DatasetScript,
		WaitTimeout:   cfg.WaitTimeout,
	})

	w := worker.NewWorker(
		newOpener(cfg),
		extractor,
		digest.NewFormatter(cfg.MessageHeader),
		services.Publishers,
		cfg.UnitSize,
	)

	summary, runErr := w.Run(ctx, urls)

	if cfg.DryRun && runErr == nil {
		digest.RenderTable(out, summary.Products)
	}

	reportMetrics(cfg, summary)

	switch {
	case errors.Is(runErr, context.Canceled):
		log.Warn().Msg("Run interrupted")
		return 1
	case runErr != nil:
		log.Error().Err(runErr).Msg("Run aborted")
		return 1
	}
	return 0
}

// Services holds the publishers used for one run
type Services struct {
	Publishers []publisher.Publisher
}

// Cleanup closes every publisher
func (s *Services) Cleanup() {
	for _, pub := range s.Publishers {
		if err := pub.Close(); err != nil {
			logger.ForPublisher().Warn().Err(err).Str("target", pub.Target()).Msg("Failed to close publisher")
		}
	}
}

// initializeServices builds the publishers the configuration asks for
func initializeServices(cfg *config.Config, runID string, out io.Writer) *Services {
	services := &Services{}

	if cfg.DryRun {
		services.Publishers = append(services.Publishers, publisher.NewConsolePublisher(out))
		logger.Info("Dry run, messages go to stdout")
	} else {
		services.Publishers = append(services.Publishers, publisher.NewSlackPublisher(cfg.SlackToken, cfg.SlackChannel))
		logger.Info("Sending messages to Slack channel %s", cfg.SlackChannel)
	}

	if cfg.RedisAddr != "" {
		services.Publishers = append(services.Publishers, publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisMaxLength,
			runID,
		))
		logger.Info("Mirroring messages to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services
}

func reportMetrics(cfg *config.Config, summary worker.Summary) {
	m := metrics.New()
	m.Observe(metrics.RunResult{
		Extracted:      summary.Extracted,
		Failed:         summary.Failed,
		MessagesSent:   summary.MessagesSent,
		MessagesFailed: summary.MessagesFailed,
		Duration:       summary.Duration,
		FinishedAt:     time.Now(),
	})

	if cfg.PushgatewayURL == "" {
		return
	}

	// The run context may already be cancelled by a signal
	ctx, cancel := context.WithTimeout(context.Background(), metricsPushTimeout)
	defer cancel()
	if err := m.Push(ctx, cfg.PushgatewayURL); err != nil {
		logger.ForMetrics().Warn().Err(err).Msg("Failed to push metrics")
	}
}
