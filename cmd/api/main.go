// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"pulse/internal/adapter/storage"
	"pulse/internal/config"
	"pulse/internal/server"
	"pulse/internal/server/handlers"
	"pulse/internal/service/insight"
	"pulse/internal/service/realtime"
	"pulse/internal/service/social"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize the optional snapshot database
	var snapshotStore *storage.AnalyticsStore
	var snapshots handlers.SnapshotReader
	var broadcasterStore realtime.AnalyticsStore
	if cfg.Database.Enabled() {
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		snapshotStore = storage.NewAnalyticsStore(db)
		snapshots = snapshotStore
		broadcasterStore = snapshotStore
	} else {
		log.Println("DATABASE_URL not set, analytics snapshots disabled")
	}

	natsConn, err := initNATS(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// Initialize platform clients
	twitterClient := social.NewTwitterClient(social.TwitterCredentials{
		BearerToken:    cfg.Social.TwitterBearerToken,
		ConsumerKey:    cfg.Social.TwitterConsumerKey,
		ConsumerSecret: cfg.Social.TwitterConsumerSecret,
		AccessToken:    cfg.Social.TwitterAccessToken,
		AccessSecret:   cfg.Social.TwitterAccessSecret,
	}, cfg.Social.RequestTimeout)
	linkedInClient := social.NewLinkedInClient(cfg.Social.LinkedInAccessToken, cfg.Social.RequestTimeout)
	instagramClient := social.NewInstagramClient(cfg.Social.InstagramAccessToken, cfg.Social.RequestTimeout)

	aggregator := social.NewAggregator(twitterClient, linkedInClient, instagramClient)

	// Initialize the content analyzer
	analyzer := insight.NewAnalyzer(insight.Config{
		APIKey:  cfg.AI.APIKey,
		APIURL:  cfg.AI.APIURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	if !analyzer.Enabled() {
		log.Println("OPENAI_API_KEY not set, content analysis will use fallbacks")
	}

	// Initialize the realtime layer
	registry := realtime.NewRegistry()
	broadcaster := realtime.NewBroadcaster(natsConn, registry, aggregator, broadcasterStore, realtime.Config{
		AnalyticsInterval: cfg.Realtime.AnalyticsInterval,
		TrackingInterval:  cfg.Realtime.TrackingInterval,
	})

	if err := broadcaster.Start(ctx); err != nil {
		log.Fatalf("Failed to start broadcaster: %v", err)
	}

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		natsConn,
		aggregator,
		analyzer,
		registry,
		broadcaster,
		snapshots,
		handlers.AccountDefaults{
			Twitter:   cfg.Social.DefaultTwitterAccount,
			LinkedIn:  cfg.Social.DefaultLinkedInAccount,
			Instagram: cfg.Social.DefaultInstagramAccount,
		},
	)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Stop broadcaster
	if err := broadcaster.Stop(shutdownCtx); err != nil {
		log.Printf("Broadcaster shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MinIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
