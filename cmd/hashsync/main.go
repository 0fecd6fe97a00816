package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/config"
	"github.com/adfharrison1/hashsync/pkg/logutil"
	"github.com/adfharrison1/hashsync/pkg/server"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to a TOML configuration file")
		port       = flag.String("port", "", "Server port (overrides the config file)")
		logLevel   = flag.String("log-level", "", "Log level (overrides the config file)")
		showHelp   = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nhashsync serves in-memory document collections with exact-match secondary indexes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                              # Start with defaults\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config hashsync.toml        # Load collections and indexes from a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090 -log-level debug  # Custom port and verbosity\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nNote:\n")
		fmt.Fprintf(os.Stderr, "  Data lives in memory only and is lost on shutdown.\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := logutil.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv := server.NewServer(cfg, logger)
	if err := srv.InitCollections(cfg.Storage.Collections); err != nil {
		logger.Fatal("failed to initialize collections", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("starting hashsync server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
