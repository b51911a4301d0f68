package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/filter"
	invH "github.com/fekuna/omnipos-catalog-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-catalog-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/order"
	orderH "github.com/fekuna/omnipos-catalog-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-catalog-service/internal/order/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/server"
	"github.com/fekuna/omnipos-catalog-service/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC probe server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg, appLogger, db, err := bootstrap()
	defer appLogger.Sync()
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		applied, err := migrations.Apply(context.Background(), db)
		if err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		appLogger.Info("Migrations applied", zap.Strings("files", applied))
	}

	// Query policies
	afterDatePolicy, err := filter.ParseDatePolicy(cfg.Query.AfterDatePolicy)
	if err != nil {
		return err
	}
	tagsPolicy, err := order.ParsePolicy(cfg.Query.OrderTagsPolicy)
	if err != nil {
		return err
	}
	appLogger.Info("Query policies",
		zap.String("after_date", afterDatePolicy.String()),
		zap.String("order_tags", string(tagsPolicy)),
		zap.Int("inventory_page_size", cfg.Query.InventoryPageSize),
	)

	// Redis is optional; a nil client disables the list cache.
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		appLogger.Info("Redis disabled, inventory listings are not cached")
	}

	// Repositories
	invRepo := invRepoPkg.NewPGRepository(db)
	typeRepo := invRepoPkg.NewTypeRepository(db)
	langRepo := invRepoPkg.NewLanguageRepository(db)
	tagRepo := invRepoPkg.NewTagRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// UseCases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, cfg.Redis.ListTTL, appLogger)
	typeUC := invUCPkg.NewTypeUseCase(typeRepo, redisClient, appLogger)
	langUC := invUCPkg.NewLanguageUseCase(langRepo, redisClient, appLogger)
	tagUC := invUCPkg.NewTagUseCase(tagRepo, redisClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, appLogger)

	// Handlers
	router := server.NewRouter(server.Handlers{
		Inventory: invH.NewInventoryHandler(invUC, filter.NewAfterDateParser(afterDatePolicy), cfg.Query.InventoryPageSize, appLogger),
		Types:     invH.NewLookupHandler[model.InventoryType](typeUC, appLogger),
		Languages: invH.NewLookupHandler[model.InventoryLanguage](langUC, appLogger),
		Tags:      invH.NewLookupHandler[model.InventoryTag](tagUC, appLogger),
		Orders:    orderH.NewOrderHandler(orderUC, tagsPolicy, appLogger),
	}, db, appLogger)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	lis, err := net.Listen("tcp", cfg.Server.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	grpcServer, healthServer := server.NewGRPCServer(appLogger)

	errCh := make(chan error, 2)
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.Server.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
	case serveErr = <-errCh:
		appLogger.Error("Server failed", zap.Error(serveErr))
	}

	appLogger.Info("Shutting down server...")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Warn("HTTP shutdown incomplete", zap.Error(err))
	}
	grpcServer.GracefulStop()

	appLogger.Info("Server stopped")
	return serveErr
}
