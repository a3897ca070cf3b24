// Command herectl drives the HERE Routing and Destination Weather APIs from
// the terminal. Credentials and telemetry settings come from the environment;
// a local .env file is loaded when present.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/herego/herego"
	"github.com/herego/herego/internal/telemetry"
)

const serviceName = "herectl"

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// envConfig is the process environment the CLI reads.
type envConfig struct {
	AppID        string `envconfig:"HERE_APP_ID"`
	AppCode      string `envconfig:"HERE_APP_CODE"`
	Environment  string `envconfig:"APP_ENV" default:"development"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
}

var (
	appCreds  herego.Credentials
	appLogger zerolog.Logger

	jsonFlag       bool
	routingURLFlag string
	weatherURLFlag string

	rootCmd = &cobra.Command{
		Use:           "herectl",
		Short:         "CLI client for the HERE Routing and Destination Weather APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional

	var cfg envConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "invalid environment:", err)
		return 1
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger().
		Level(level)

	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize telemetry")
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	appCreds = herego.Credentials{AppID: cfg.AppID, AppCode: cfg.AppCode}
	appLogger = log

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("herectl %s (built %s)\n", Version, BuildTime))

	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print raw JSON instead of a summary")
	rootCmd.PersistentFlags().StringVar(&routingURLFlag, "routing-url", "", "override the routing endpoint")
	rootCmd.PersistentFlags().StringVar(&weatherURLFlag, "weather-url", "", "override the weather endpoint")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// requireCredentials rejects API commands before any request is built.
func requireCredentials() error {
	if appCreds.AppID == "" || appCreds.AppCode == "" {
		return fmt.Errorf("HERE_APP_ID and HERE_APP_CODE must be set")
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
