package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/df07/go-particle-domains/pkg/domain"
	"github.com/df07/go-particle-domains/pkg/logging"
	"github.com/df07/go-particle-domains/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	configPath := flag.String("config", "domains.yaml", "YAML file describing the domains to serve")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	cfg, err := domain.LoadConfigFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	webServer, err := server.NewServer(*port, cfg, logger)
	if err != nil {
		logger.Error("invalid config", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("particle domain server", zap.String("url", fmt.Sprintf("http://localhost:%d/api/domains", *port)))
	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
