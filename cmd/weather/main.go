// Command weather is an interactive current-weather lookup backed by the
// OpenWeather API, with a small file-backed list of favourite cities.
//
// Usage:
//
//	weather [-favourites ./favourites.json] [-env-file .env] [-metrics-addr :9090]
//
// The API key is read from OPENWEATHER_API_KEY, then from the .env file, and
// finally prompted for and saved to the .env file.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"

	httpadapter "github.com/couchcryptid/wxtools/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/wxtools/internal/adapter/kafka"
	"github.com/couchcryptid/wxtools/internal/adapter/openweather"
	"github.com/couchcryptid/wxtools/internal/config"
	"github.com/couchcryptid/wxtools/internal/favourites"
	"github.com/couchcryptid/wxtools/internal/observability"
	"github.com/couchcryptid/wxtools/internal/shell"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  "weather",
		Usage: "look up current weather and manage favourite cities",
		Flags: flags(),
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := configFromFlags(c)
			if err != nil {
				return err
			}
			return run(ctx, cfg, observability.NewMetrics(), stdin, stdout, stderr)
		},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "favourites",
			Usage: "path to the favourites JSON file (overrides FAVOURITES_PATH)",
		},
		&cli.StringFlag{
			Name:    "env-file",
			Usage:   ".env file holding OPENWEATHER_API_KEY",
			Value:   ".env",
			EnvVars: []string{"DOTENV_PATH"},
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "serve /healthz, /readyz and /metrics on this address (overrides METRICS_ADDR)",
		},
	}
}

// configFromFlags loads the .env file named by -env-file, reads the
// environment, and applies flag overrides.
func configFromFlags(c *cli.Context) (*config.Config, error) {
	envPath := c.String("env-file")
	if err := config.LoadDotenv(envPath); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.DotenvPath = envPath
	if c.IsSet("favourites") {
		if cfg.FavouritesPath, err = homedir.Expand(c.String("favourites")); err != nil {
			return nil, fmt.Errorf("invalid -favourites: %w", err)
		}
	}
	if c.IsSet("metrics-addr") {
		cfg.MetricsAddr = c.String("metrics-addr")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := observability.NewLogger(cfg)

	// One buffered reader for stdin so the key prompt and the shell never
	// steal each other's input.
	in := bufio.NewReader(stdin)
	if _, err := config.EnsureAPIKey(cfg, in, stdout); err != nil {
		if errors.Is(err, config.ErrAPIKeyRequired) {
			return cli.Exit("API key is required.", 1)
		}
		return err
	}

	client := openweather.NewClient(cfg.APIKey, cfg.BaseURL, cfg.APITimeout, metrics, logger)
	provider := openweather.NewCachedProvider(client, cfg.CacheSize, cfg.CacheTTL, metrics)

	store, err := favourites.Open(cfg.FavouritesPath, cfg.FavouritesMax, logger)
	if err != nil {
		return err
	}
	logger.Info("favourites loaded", "path", cfg.FavouritesPath, "count", store.Len())

	opts := shell.Options{
		Out:         stdout,
		Err:         stderr,
		Concurrency: cfg.FetchConcurrency,
	}

	// Publish observations to Kafka (feature-flagged via KAFKA_BROKERS).
	if cfg.PublishEnabled() {
		writer := kafkaadapter.NewWriter(cfg, metrics, logger)
		defer closeWithLog(writer, "kafka writer", logger)
		opts.Publisher = writer
		logger.Info("observation publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	var srv *httpadapter.Server
	if cfg.MetricsAddr != "" {
		srv = httpadapter.NewServer(cfg.MetricsAddr, logger, store)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops server error", "error", err)
			}
		}()
	}

	runErr := shell.New(provider, store, metrics, logger, opts).Run(ctx, in)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown error", "error", err)
		}
	}

	return runErr
}

func closeWithLog(c io.Closer, name string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error(name+" close error", "error", err)
	}
}
