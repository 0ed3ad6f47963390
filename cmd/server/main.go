package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/jscharber/textclinic/internal/server"
	"github.com/jscharber/textclinic/pkg/analysis"
	"github.com/jscharber/textclinic/pkg/config"
	"github.com/jscharber/textclinic/pkg/logger"
)

const serviceVersion = "1.0.0"

func main() {
	var (
		configFile = flag.String("config", "", "Path to configuration file (YAML or JSON)")
		host       = flag.String("host", "", "Server host (overrides config)")
		port       = flag.Int("port", 0, "Server port (overrides config)")
		logLevel   = flag.String("log-level", "", "Log level (overrides config)")
		version    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *version {
		fmt.Printf("textclinic server v%s\n", serviceVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Command line flags take priority over file and environment.
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	appLogger, err := logger.New(&cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	service := analysis.NewService(&cfg.Analysis)

	appLogger.Info("server configuration",
		zap.String("address", cfg.Server.Address()),
		zap.Int("max_concurrent_analyses", cfg.Analysis.MaxConcurrentAnalyses),
		zap.Int("max_batch_size", cfg.Analysis.MaxBatchSize),
		zap.Bool("include_risk_by_default", cfg.Analysis.IncludeRiskByDefault),
		zap.String("log_level", cfg.Logging.Level),
	)

	srv := server.New(cfg, appLogger, service)
	if err := srv.Start(context.Background()); err != nil {
		appLogger.Fatal("server failed", zap.Error(err))
	}
}
