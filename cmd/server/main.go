package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	natsclient "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpadapter "github.com/stridelab/wellness-challenges/internal/adapter/inbound/http"
	natsadapter "github.com/stridelab/wellness-challenges/internal/adapter/outbound/nats"
	"github.com/stridelab/wellness-challenges/internal/adapter/outbound/postgres"
	rediscache "github.com/stridelab/wellness-challenges/internal/adapter/outbound/redis"
	"github.com/stridelab/wellness-challenges/internal/app/command"
	"github.com/stridelab/wellness-challenges/internal/app/consumer"
	"github.com/stridelab/wellness-challenges/internal/app/query"
	"github.com/stridelab/wellness-challenges/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting wellness service",
		zap.String("address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
	)

	// Connect to PostgreSQL
	pool, err := connectPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Connect to Redis
	redisClient, err := connectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// Connect to NATS and ensure the progress stream exists
	natsConn, err := connectNATS(ctx, cfg.NATS, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}
	defer natsConn.Close()

	js, err := natsConn.JetStream()
	if err != nil {
		return fmt.Errorf("failed to get jetstream context: %w", err)
	}
	if err := natsadapter.EnsureStream(js); err != nil {
		return fmt.Errorf("failed to ensure progress stream: %w", err)
	}

	// Initialize repositories
	challengeRepo := postgres.NewChallengeRepository(pool)
	participantRepo := postgres.NewParticipantRepository(pool)
	progressRepo := postgres.NewProgressRepository(pool)

	// Initialize cache
	leaderboardCache := rediscache.NewLeaderboardCache(redisClient, cfg.Consumer.CacheTTL)

	// Initialize messaging
	eventPublisher := natsadapter.NewEventPublisher(natsConn, cfg.NATS.SubjectPrefix)
	progressPublisher := natsadapter.NewProgressPublisher(js)

	// Initialize command handlers
	createChallengeHandler := command.NewCreateChallengeHandler(challengeRepo, eventPublisher)
	addParticipantHandler := command.NewAddParticipantHandler(challengeRepo, participantRepo, eventPublisher)
	submitProgressHandler := command.NewSubmitProgressHandler(progressPublisher)

	// Initialize query handlers
	getChallengeHandler := query.NewGetChallengeHandler(challengeRepo, participantRepo)
	listActiveChallengesHandler := query.NewListActiveChallengesHandler(challengeRepo)
	getLeaderboardHandler := query.NewGetLeaderboardHandler(progressRepo, leaderboardCache)

	// Initialize the progress consumer
	processor := consumer.NewProcessor(
		participantRepo,
		progressRepo,
		leaderboardCache,
		cfg.Consumer.CacheTTL,
		logger.Named("processor"),
	)
	progressConsumer, err := natsadapter.NewProgressConsumer(
		js,
		processor,
		progressPublisher,
		natsadapter.ConsumerConfig{
			MaxDeliver: cfg.Consumer.MaxDeliver,
			AckWait:    cfg.Consumer.AckWait,
		},
		logger.Named("consumer"),
	)
	if err != nil {
		return fmt.Errorf("failed to create progress consumer: %w", err)
	}

	// Initialize HTTP server
	handler := httpadapter.NewHandler(httpadapter.HandlerConfig{
		CreateChallengeHandler:      createChallengeHandler,
		AddParticipantHandler:       addParticipantHandler,
		SubmitProgressHandler:       submitProgressHandler,
		GetChallengeHandler:         getChallengeHandler,
		ListActiveChallengesHandler: listActiveChallengesHandler,
		GetLeaderboardHandler:       getLeaderboardHandler,
	})
	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}, handler, logger.Named("http"))

	// Run the consumer loop and the server
	errChan := make(chan error, 2)
	go func() {
		if err := progressConsumer.Run(ctx); err != nil && ctx.Err() == nil {
			errChan <- fmt.Errorf("consumer error: %w", err)
		}
	}()
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("wellness service started")

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))

		// Stop the consumer first so in-flight deliveries finish or get
		// redelivered, then drain the HTTP server.
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}

		logger.Info("wellness service stopped gracefully")
		return nil
	}
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)

	pool, err := backoff.Retry(ctx, func() (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5))
	if err != nil {
		return nil, err
	}

	logger.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
	)

	return pool, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, client.Ping(ctx).Err()
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5)); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to redis",
		zap.String("address", cfg.Address()),
	)

	return client, nil
}

func connectNATS(ctx context.Context, cfg config.NATSConfig, logger *zap.Logger) (*natsclient.Conn, error) {
	opts := []natsclient.Option{
		natsclient.MaxReconnects(cfg.MaxReconnects),
		natsclient.ReconnectWait(cfg.ReconnectWait),
		natsclient.DisconnectErrHandler(func(nc *natsclient.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		natsclient.ReconnectHandler(func(nc *natsclient.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := backoff.Retry(ctx, func() (*natsclient.Conn, error) {
		return natsclient.Connect(cfg.URL, opts...)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	logger.Info("connected to nats",
		zap.String("url", conn.ConnectedUrl()),
	)

	return conn, nil
}
