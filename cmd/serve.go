package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/die-Manufaktur/seo-copilot-api/config"
	"github.com/die-Manufaktur/seo-copilot-api/internal/analytics"
	"github.com/die-Manufaktur/seo-copilot-api/internal/analyzer"
	"github.com/die-Manufaktur/seo-copilot-api/internal/api"
	"github.com/die-Manufaktur/seo-copilot-api/internal/origin"
)

// serveCmd is the cobra command that starts the analysis API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the seo analysis api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// serve initializes dependencies and starts the analysis API server
func serve(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = k.Bool("debug")
	cfg.Server.Pretty = k.Bool("pretty")

	matcher, err := origin.NewMatcher(cfg.CORS.AllowedOrigins)
	if err != nil {
		return fmt.Errorf("compiling origin allow-list: %w", err)
	}

	a := setupAnalyzer(cfg)

	// assign through the interface only when configured, a typed nil
	// would defeat the emitter presence check
	var emitter api.EventEmitter
	if client := setupAnalytics(cfg); client != nil {
		emitter = client
	}

	handler := api.NewRouter(api.RouterConfig{
		Analyzer:    a,
		Origins:     matcher,
		Emitter:     emitter,
		MaxBodySize: cfg.Server.MaxBodySize,
		RateRPS:     cfg.RateLimit.RPS,
		RateBurst:   cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Int("origins", len(cfg.CORS.AllowedOrigins)).Msg("starting seo-copilot service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupAnalyzer initializes the page analyzer from config
func setupAnalyzer(cfg *config.Config) *analyzer.Analyzer {
	return analyzer.New(
		analyzer.WithFetchTimeout(cfg.Analyzer.FetchTimeout),
		analyzer.WithMaxResponseBytes(cfg.Analyzer.MaxResponseBytes),
		analyzer.WithUserAgent(cfg.Analyzer.UserAgent),
		analyzer.WithCheckConcurrency(cfg.Analyzer.CheckConcurrency),
	)
}

// setupAnalytics initializes the analytics webhook emitter from config,
// returning nil when unconfigured
func setupAnalytics(cfg *config.Config) *analytics.Client {
	if cfg.Analytics.WebhookURL == "" {
		log.Info().Msg("analytics events not configured, skipping")
		return nil
	}

	client, err := analytics.New(
		cfg.Analytics.WebhookURL,
		analytics.WithHTTPClient(&http.Client{Timeout: cfg.Analytics.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize analytics client")
		return nil
	}

	log.Info().Msg("analytics events configured")

	return client
}
