package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tnega/gosearch/internal/builder"
	"github.com/tnega/gosearch/internal/entity"
	"go.uber.org/zap"
)

func main() {
	uc, cfg, logger, err := builder.BuildIngestor()
	if err != nil {
		log.Fatal("Failed to build ingestion tool:", err)
	}

	if cfg.GeminiAPIKey == "" && !cfg.EnableMocks {
		fmt.Fprintln(os.Stderr, "Error:", entity.ErrMissingAPIKey)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal, aborting ingestion",
			zap.String("signal", sig.String()))
		cancel()
	}()

	summary, err := uc.Run(ctx)
	if err != nil {
		logger.Error("ingestion failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Store: %s\n", summary.StoreName)
	fmt.Printf("Submitted: %d, succeeded: %d, failed: %d\n",
		summary.Submitted, summary.Succeeded, summary.Failed)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
