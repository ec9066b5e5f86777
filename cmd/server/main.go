package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quizbank/internal/cache"
	"quizbank/internal/config"
	"quizbank/internal/logger"
	"quizbank/internal/repository"
	"quizbank/internal/service"
	"quizbank/internal/transport/rest"
)

// @title Quizbank API
// @version 1.0
// @description Question bank CRUD API for the quizbank client
// @host localhost:8080
// @BasePath /api
func main() {
	// .env is optional, real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	ctx := context.Background()

	// The server is useless without its store, so an unreachable
	// database at boot is fatal.
	pool, err := repository.NewPool(ctx, cfg.DB.URL, repository.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to open postgres pool", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		zl.Fatal("failed to ping postgres", zap.Error(err))
	}
	zl.Info("connected to postgres")

	questionRepo := repository.NewQuestionRepo(pool)
	if err := questionRepo.EnsureSchema(ctx); err != nil {
		zl.Fatal("failed to ensure schema", zap.Error(err))
	}
	seeded, err := questionRepo.SeedIfEmpty(ctx)
	if err != nil {
		zl.Fatal("failed to seed questions", zap.Error(err))
	}
	if seeded {
		zl.Info("seeded sample questions", zap.Int("count", len(repository.SampleQuestions)))
	}

	// Redis is a best-effort read cache; a missing redis degrades every
	// list request to the database instead of failing the server.
	var questionCache cache.QuestionCache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		zl.Warn("redis unreachable, question list cache disabled", zap.Error(err))
	} else {
		zl.Info("connected to redis")
		questionCache = cache.NewQuestionCache(rdb, cfg.Redis.CacheTTL)
	}

	questionSvc := service.NewQuestionService(questionRepo, questionCache, zl)

	router := rest.NewRouter(&rest.Container{
		QuestionService: questionSvc,
		Logger:          zl,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		zl.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited")
}
