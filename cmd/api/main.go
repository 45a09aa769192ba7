package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"workspace.busmate.lk/internal/app"
	"workspace.busmate.lk/internal/config"
	"workspace.busmate.lk/internal/directory"
	"workspace.busmate.lk/internal/logging"
	"workspace.busmate.lk/internal/restapi"
)

func main() {
	var (
		configPath   string
		port         int
		env          string
		directoryURL string
	)

	flag.StringVar(&configPath, "config", "workspace.yaml", "Path to the configuration file")
	flag.IntVar(&port, "port", 0, "API server port (overrides config)")
	flag.StringVar(&env, "env", "", "Environment (development|staging|production, overrides config)")
	flag.StringVar(&directoryURL, "directory-url", "", "Base URL of the route directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if env != "" {
		cfg.Server.Env = env
	}
	if directoryURL != "" {
		cfg.Directory.BaseURL = directoryURL
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	var logger *slog.Logger
	if cfg.Logging.Format == "json" {
		logger = logging.NewStructuredLogger(os.Stdout, level)
	} else {
		logger = logging.NewTextLogger(os.Stdout, level)
	}

	var dir directory.Directory
	if cfg.Directory.BaseURL != "" {
		timeout := time.Duration(cfg.Directory.TimeoutMS) * time.Millisecond
		dir = directory.NewClient(cfg.Directory.BaseURL, timeout, logger)
		logger.Info("using remote directory", "base_url", cfg.Directory.BaseURL)
	} else {
		dir = directory.NewFake()
		logger.Warn("no directory URL configured, using in-memory directory")
	}

	application := &app.Application{
		Config:    cfg,
		Logger:    logger,
		Directory: dir,
	}
	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Server.Env)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}
