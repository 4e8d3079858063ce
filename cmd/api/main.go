package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"creator-quiz/internal/config"
	"creator-quiz/internal/content"
	"creator-quiz/internal/db"
	apihttp "creator-quiz/internal/http"
	"creator-quiz/internal/repository"
	"creator-quiz/internal/scoring"
	"creator-quiz/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	catalog, err := content.LoadFile(cfg.ContentPath)
	if err != nil {
		logger.Fatal("load quiz content", zap.String("path", cfg.ContentPath), zap.Error(err))
	}
	logger.Info("quiz content loaded",
		zap.String("path", cfg.ContentPath),
		zap.Int("questions", len(catalog.Questions())),
		zap.String("secondary_strategy", string(catalog.SecondaryStrategy())),
	)

	responses, closeStore, err := openResponseStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open response store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	window := time.Duration(cfg.SubmitRateWindow) * time.Second
	limiter := service.NewSubmissionRateLimiter(window, cfg.SubmitRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory submission limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisSubmissionRateLimiter(redisClient, window, cfg.SubmitRateLimit, cfg.SubmitRateKeyPrefix)
		}
		cancel()
	}

	tokens := service.NewReportTokenService(cfg.ReportTokenSecret, time.Duration(cfg.ReportTokenTTLMins)*time.Minute)
	if !tokens.Enabled() {
		logger.Warn("report token secret not configured, pdf downloads are public")
	}

	quizSvc := service.NewQuizService(scoring.NewClassifier(catalog), responses, limiter, tokens, logger)
	quizHandler := apihttp.NewQuizHandler(logger, quizSvc)
	router := apihttp.NewRouter(logger, quizHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           apihttp.WithCORS(router, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("store", cfg.StoreDriver))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// openResponseStore selecciona el backend del log de respuestas segun STORE_DRIVER.
func openResponseStore(ctx context.Context, cfg *config.Config) (repository.ResponseRepository, func(), error) {
	switch cfg.StoreDriver {
	case "", config.StoreDriverFile:
		store, err := repository.NewFileResponseLog(cfg.ResponsesPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.StoreDriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteResponseRepository(sqlDB), func() { _ = sqlDB.Close() }, nil
	case config.StoreDriverPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPgResponseRepository(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
