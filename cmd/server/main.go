package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"bimbingan_service/internal/cache"
	"bimbingan_service/internal/config"
	"bimbingan_service/internal/database/postgres"
	"bimbingan_service/internal/handler"
	"bimbingan_service/internal/handler/middleware"
	"bimbingan_service/internal/kafka"
	"bimbingan_service/internal/logging"
	"bimbingan_service/internal/metadata"
	"bimbingan_service/internal/notification"
	"bimbingan_service/internal/repository"
	"bimbingan_service/internal/service"
	"bimbingan_service/internal/storage"
	"bimbingan_service/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("cannot create logger: %v", err))
	}
	logger := logging.New(zapLogger)
	defer logger.Sync()

	ctx = logging.ContextWithLogger(ctx, logger)

	cfg, err := config.New()
	if err != nil {
		logger.Fatal(ctx, "cannot create config", zap.Error(err))
	}

	database, err := postgres.New(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "cannot create db", zap.Error(err))
	}
	defer database.Close()

	s3Client, err := storage.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "cannot create s3 client", zap.Error(err))
	}
	blobs := storage.NewBlobStore(s3Client, cfg.S3Bucket, cfg.DocumentURLTTL, logger)
	if err := blobs.EnsureBucket(ctx); err != nil {
		logger.Fatal(ctx, "cannot prepare bucket", zap.Error(err), zap.String("bucket", cfg.S3Bucket))
	}

	redisConn, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal(ctx, "cannot connect to redis", zap.Error(err))
	}
	defer redisConn.Close()
	redisCache := cache.NewRedisCache(redisConn)

	producer, err := kafka.NewProducer(kafka.Config{
		Brokers:      cfg.KafkaBrokers,
		WriteTimeout: cfg.NotificationTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "cannot create kafka producer", zap.Error(err))
	}

	notifier := notification.NewKafkaNotifier(producer, cfg.NotificationTopic, utils.NewCircuitBreaker(5, 30*time.Second))
	dispatcher := notification.NewDispatcher(notifier, cfg.NotificationTimeout, logger)

	pool := database.Pool()
	engine := service.NewBimbinganService(
		repository.NewSubmissionRepository(pool),
		repository.NewReplyRepository(pool),
		repository.NewDirectoryRepository(pool),
		blobs,
		dispatcher,
		logger,
		service.Options{
			ProgressRetries:    cfg.ProgressRetries,
			ProgressRetryDelay: cfg.ProgressRetryDelay,
		},
	)

	bimbinganHandler := handler.NewBimbinganHandler(engine, blobs, redisCache, cfg.PendingCountTTL)
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"postgres": database,
		"redis":    redisCache,
	}, 3*time.Second)

	r := chi.NewRouter()
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, cfg.MaxUploadBytes)
	})
	r.Method(http.MethodGet, "/health", healthHandler)
	bimbinganHandler.RegisterRoutes(r, middleware.NewAuthMiddleware())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		logger.Fatal(ctx, "cannot create listener", zap.Error(err))
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			metadata.NewMetadataUnaryInterceptor(),
			logging.NewUnaryLoggingInterceptor(logger),
		)),
	)
	database.RegisterHealthService(ctx, grpcServer) // readiness probe

	worker := NewReminderWorker(engine, logger, cfg.ReminderInterval, cfg.ReminderStaleAfter)
	workerDone := worker.Run(ctx)

	logger.Info(ctx, "Starting servers",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "cannot start http server", zap.Error(err))
		}
	}()
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			logger.Fatal(ctx, "failed to serve grpc", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info(ctx, "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", zap.Error(err))
	}

	shutdownDone := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(shutdownDone)
	}()
	select {
	case <-shutdownDone:
	case <-shutdownCtx.Done():
		logger.Info(ctx, "GracefulStop timed out, forcing Stop")
		grpcServer.Stop()
	}

	// The worker dispatches reminders, so it has to be gone before the dispatcher drains.
	<-workerDone
	dispatcher.Wait()
	if err := producer.Close(); err != nil {
		logger.Error(ctx, "failed to close kafka producer", zap.Error(err))
	}
	logger.Info(ctx, "Server stopped")
}
