package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/dbakibillah/petVerse-server/internal/cache"
	"github.com/dbakibillah/petVerse-server/internal/config"
	"github.com/dbakibillah/petVerse-server/internal/domain"
	h "github.com/dbakibillah/petVerse-server/internal/http"
	"github.com/dbakibillah/petVerse-server/internal/payments"
	"github.com/dbakibillah/petVerse-server/internal/poller"
	"github.com/dbakibillah/petVerse-server/internal/publisher"
	"github.com/dbakibillah/petVerse-server/internal/repository"
	"github.com/dbakibillah/petVerse-server/internal/service"
	"github.com/dbakibillah/petVerse-server/pkg/circuitbreaker"
	"github.com/dbakibillah/petVerse-server/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to an optional config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// MongoDB
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		zl.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(context.Background())
	if err := repository.CreateIndexes(ctx, mongoDB); err != nil {
		zl.Fatal("failed to create indexes", zap.Error(err))
	}
	zl.Info("connected to MongoDB", zap.String("database", cfg.MongoDBName))

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zl.Fatal("redis connection failed", zap.Error(err))
	}
	zl.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))

	cartService := service.NewCartService(
		repository.NewMongoRepository(mongoDB),
		cache.NewRedisCache(redisClient),
		zl,
	)

	// Payment gateway
	var gateway payments.Gateway
	if cfg.StripeSecretKey != "" {
		stripeGateway, err := payments.NewStripeGateway(payments.StripeConfig{
			APIKey: cfg.StripeSecretKey,
			Logger: zl,
		})
		if err != nil {
			zl.Fatal("failed to create stripe gateway", zap.Error(err))
		}
		gateway = payments.NewBreakerGateway(stripeGateway, circuitbreaker.DefaultConfig("stripe"), zl)
	} else {
		zl.Warn("stripe secret key not set, payment intents are disabled")
	}

	// Kafka
	var events service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := publisher.NewKafkaPublisher(zl, cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		events = kafkaPublisher

		cartPoller := poller.NewPoller(cartService, zl, cfg.KafkaBrokers...)
		defer cartPoller.Close()
		go cartPoller.Run(ctx)
		zl.Info("kafka enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	handlers := h.Handlers{
		Carts:    h.NewCartHandler(cartService, cfg.RequestTimeout),
		Products: h.NewProductHandler(service.NewProductService(repository.NewProductRepository(mongoDB), zl)),
		Users:    h.NewUserHandler(service.NewUserService(repository.NewUserRepository(mongoDB), zl)),
		Threads:  h.NewThreadHandler(service.NewThreadService(repository.NewThreadRepository(mongoDB), zl)),
		Grooming: h.NewAppointmentHandler(service.NewAppointmentService(domain.AppointmentKindGrooming,
			repository.NewAppointmentRepository(mongoDB, domain.AppointmentKindGrooming), zl)),
		Healthcare: h.NewAppointmentHandler(service.NewAppointmentService(domain.AppointmentKindHealthcare,
			repository.NewAppointmentRepository(mongoDB, domain.AppointmentKindHealthcare), zl)),
		Payments: h.NewPaymentHandler(service.NewPaymentService(gateway,
			repository.NewPaymentRepository(mongoDB), events, zl)),
	}

	router := h.NewRouter(h.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
		Logger:         zl,
		HealthChecks: map[string]h.HealthCheck{
			"mongo": func(ctx context.Context) error { return mongoDB.Client().Ping(ctx, readpref.Primary()) },
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
	}, handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("petVerse server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited")
}
