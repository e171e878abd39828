// Command webvideo-dev runs the browser test harness for the playback
// library: a local server with a sample page, range-capable media serving,
// and Prometheus metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-drift/webvideo/internal/devserver"
)

func main() {
	configPath := flag.String("config", "webvideo-dev.yaml", "path to the server config file")
	flag.Parse()

	cfg, err := devserver.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "webvideo-dev:", err)
		os.Exit(1)
	}

	log := cfg.Logging.NewLogger()
	slog.SetDefault(log)

	srv := devserver.New(cfg, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown failed", "err", err)
			os.Exit(1)
		}
	}
	log.Info("stopped")
}
