package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rojgari/candidate-intake/internal/config"
	"github.com/rojgari/candidate-intake/internal/location"
	"github.com/rojgari/candidate-intake/internal/logging"
	"github.com/rojgari/candidate-intake/internal/otp"
	"github.com/rojgari/candidate-intake/internal/server"
	"github.com/rojgari/candidate-intake/internal/submit"
	"github.com/rojgari/candidate-intake/internal/validation"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the location, OTP and submission endpoints of the intake form.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	backendCfg, err := config.NewBackendConfig()
	if err != nil {
		return fmt.Errorf("failed to create backend config: %w", err)
	}
	locationCfg, err := config.NewLocationConfig()
	if err != nil {
		return fmt.Errorf("failed to create location config: %w", err)
	}
	tokenCfg, err := config.NewTokenConfig()
	if err != nil {
		return fmt.Errorf("failed to create token config: %w", err)
	}
	otpCfg, err := config.NewOTPConfig()
	if err != nil {
		return fmt.Errorf("failed to create OTP config: %w", err)
	}
	mailCfg, err := config.NewMailConfig()
	if err != nil {
		return fmt.Errorf("failed to create mail config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	source, err := buildLocationSource(ctx, locationCfg, log)
	if err != nil {
		return err
	}

	store, err := buildOTPStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	mailer, err := otp.NewSESMailer(ctx, mailCfg)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}

	tokens := otp.NewTokenService(tokenCfg)
	otpService := otp.NewService(store, mailer, tokens, otpCfg, log)

	engine := validation.New()
	dispatcher := submit.NewDispatcher(backendCfg, log)
	submitter := submit.NewSubmitter(engine, dispatcher, log)

	srv := server.New(server.Options{
		Port:       servePort,
		Log:        log,
		Locations:  source,
		OTPService: otpService,
		Tokens:     tokens,
		Submitter:  submitter,
		Dispatcher: dispatcher,
		Engine:     engine,
	})

	return srv.Start()
}

// buildLocationSource prefers the per-request upstream proxy when
// configured, otherwise preloads the hierarchy into an index. A failed
// preload degrades to an empty index rather than refusing to start.
func buildLocationSource(ctx context.Context, cfg *config.LocationConfig, log logging.Logger) (location.Source, error) {
	if cfg.ServiceURL != "" {
		log.Info("using upstream location service", zap.String("url", cfg.ServiceURL))
		return location.NewClient(cfg.ServiceURL, nil), nil
	}

	var loader *location.Loader
	if cfg.Path != "" {
		loader = location.NewFileLoader(cfg.Path)
	} else {
		loader = location.NewURLLoader(cfg.URL, &http.Client{Timeout: 30 * time.Second})
	}

	idx, err := loader.Load(ctx)
	if err != nil {
		log.Error("location data load failed, serving empty options", zap.Error(err))
	}
	return location.NewIndexSource(idx), nil
}

// buildOTPStore selects the code store: Redis by default, in-memory
// when OTP_STORE=memory (single-instance deployments and local runs).
func buildOTPStore(ctx context.Context) (otp.Store, error) {
	if os.Getenv("OTP_STORE") == "memory" {
		return otp.NewMemoryStore(otp.DefaultSweepInterval), nil
	}

	redisCfg, err := config.NewRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create redis config: %w", err)
	}
	store, err := otp.NewRedisStore(ctx, redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return store, nil
}
