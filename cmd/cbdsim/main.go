// Package main is the entrypoint for cbdsim, the local Cloud Big Data
// control-plane simulator used for development and end-to-end tests.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/imamik/cbdctl/internal/simulator"
)

func main() {
	addr := flag.String("addr", ":8989", "HTTP listen address")
	dbPath := flag.String("db", "./data/cbdsim", "Badger DB path")
	secret := flag.String("jwt-secret", "", "JWT signing secret (CBDSIM_JWT_SECRET)")
	buildDelay := flag.Duration("build-delay", 30*time.Second, "How long clusters stay in BUILDING")
	deleteDelay := flag.Duration("delete-delay", 10*time.Second, "How long clusters stay in DELETING")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(*debug)
	defer func() { _ = logger.Sync() }()

	signingSecret := *secret
	if signingSecret == "" {
		signingSecret = os.Getenv("CBDSIM_JWT_SECRET")
	}
	if signingSecret == "" {
		logger.Fatal("no JWT secret: pass -jwt-secret or set CBDSIM_JWT_SECRET")
	}

	store, err := simulator.NewBadgerStore(*dbPath)
	if err != nil {
		logger.Fatal("failed to open badger store", zap.Error(err))
	}
	defer store.Close()

	opts := []simulator.ServiceOption{
		simulator.WithLogger(logger),
		simulator.WithBuildDelay(*buildDelay),
		simulator.WithDeleteDelay(*deleteDelay),
	}

	// Lifecycle events go to NATS only when a broker is configured.
	if natsURL := os.Getenv("CBDSIM_NATS_URL"); natsURL != "" {
		publisher, err := simulator.NewPublisher(natsURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to nats", zap.String("url", natsURL), zap.Error(err))
		}
		defer publisher.Close()
		opts = append(opts, simulator.WithPublisher(publisher))
		logger.Info("publishing lifecycle events", zap.String("url", natsURL))
	}

	svc := simulator.NewService(store, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	router := simulator.NewRouter(simulator.RouterConfig{
		Service: svc,
		Secret:  []byte(signingSecret),
		Users:   usersFromEnv(),
		Logger:  logger,
	})

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("control plane listening", zap.String("addr", *addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown initiated")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// usersFromEnv reads the accepted credentials. CBDSIM_USERS holds
// comma-separated user:apiKey pairs; empty means a single default
// dev user.
func usersFromEnv() map[string]string {
	users := map[string]string{"dev": "dev-api-key"}
	raw := os.Getenv("CBDSIM_USERS")
	if raw == "" {
		return users
	}

	users = map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		if user, key, ok := strings.Cut(strings.TrimSpace(pair), ":"); ok {
			users[user] = key
		}
	}
	return users
}
