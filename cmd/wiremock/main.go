// wiremock CLI - starts the stub server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raycoarana/wiremock/pkg/config"
	"github.com/raycoarana/wiremock/pkg/logging"
	"github.com/raycoarana/wiremock/pkg/server"
)

// Build-time variables set via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath     string
		port           int
		mappingsDir    string
		logLevel       string
		logFormat      string
		disableReqLogs bool
	)

	cmd := &cobra.Command{
		Use:     "wiremock",
		Short:   "Serve HTTP stubs from mapping files",
		Version: fmt.Sprintf("%s (%s)", Version, Commit),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			// Flags override file values when set explicitly.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("mappings") {
				cfg.MappingsDir = mappingsDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if cmd.Flags().Changed("no-request-log") {
				cfg.DisableRequestLogging = disableReqLogs
			}

			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "port to listen on")
	cmd.Flags().StringVarP(&mappingsDir, "mappings", "m", "mappings", "directory of stub mapping files")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	cmd.Flags().BoolVar(&disableReqLogs, "no-request-log", false, "disable request logging")

	return cmd
}

func run(cfg *config.Config) error {
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	mappings, err := config.LoadMappings(cfg.MappingsDir)
	if err != nil {
		return err
	}
	log.Info("mappings loaded", "dir", cfg.MappingsDir, "count", len(mappings))

	srv, err := server.New(cfg,
		server.WithLogger(log),
		server.WithMappings(mappings),
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
