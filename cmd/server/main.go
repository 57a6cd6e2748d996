package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gemforge/atelier/internal/config"
	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/handler"
	"github.com/gemforge/atelier/internal/middleware"
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, cfg)
	handlers := handler.NewHandlers(services)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers, repos, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	_ = rdb.Close()
	logger.Info("server stopped")
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapCfg := zap.NewProductionConfig()
	if cfg.Log.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level
	return zapCfg.Build()
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)
	return db, nil
}

func registerRoutes(router *gin.Engine, h *handler.Handlers, repos *repository.Repositories, cfg *config.Config) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	api := v1.Group("")
	api.Use(middleware.JWTAuth(cfg.JWT.Secret, repos.User))
	{
		api.GET("/auth/me", h.Auth.Me)

		jobs := api.Group("/jobs")
		{
			jobs.POST("", middleware.RequirePermission("jobs:create"), h.Job.Create)
			jobs.GET("", middleware.RequirePermission("jobs:view"), h.Job.List)
			jobs.GET("/:id", middleware.RequirePermission("jobs:view"), h.Job.Get)
			jobs.PUT("/:id", middleware.RequirePermission("jobs:edit"), h.Job.Update)
			jobs.DELETE("/:id", middleware.RequirePermission("jobs:delete"), h.Job.Delete)
			jobs.PUT("/status/:id", middleware.RequirePermission("jobs:edit"), h.Job.UpdateStatus)

			jobs.POST("/wastage-material", middleware.RequirePermission("jobs:create"), h.Adjustment.CreateWastage)
			jobs.PUT("/wastage-material/:id", middleware.RequirePermission("jobs:edit"), h.Adjustment.DecideWastage)
			jobs.GET("/wastage-material", middleware.RequirePermission("jobs:view"), h.Adjustment.ListWastage)
			jobs.POST("/return-material", middleware.RequirePermission("jobs:create"), h.Adjustment.CreateReturn)
			jobs.PUT("/return-material/:id", middleware.RequirePermission("jobs:edit"), h.Adjustment.DecideReturn)
			jobs.GET("/return-material", middleware.RequirePermission("jobs:view"), h.Adjustment.ListReturn)
		}

		tracker := api.Group("/production-tracker")
		{
			tracker.GET("", middleware.RequirePermission("production-tracker:view"), h.Tracker.List)
			tracker.PUT("/status/:id", middleware.RequirePermission("production-tracker:edit"), h.Tracker.UpdateStatus)
		}

		materials := api.Group("/raw-materials")
		{
			materials.POST("", middleware.RequirePermission("raw-materials:create"), h.RawMaterial.Create)
			materials.GET("", middleware.RequirePermission("raw-materials:view"), h.RawMaterial.List)
			materials.GET("/:id", middleware.RequirePermission("raw-materials:view"), h.RawMaterial.Get)
			materials.PUT("/:id", middleware.RequirePermission("raw-materials:edit"), h.RawMaterial.Update)
			materials.DELETE("/:id", middleware.RequirePermission("raw-materials:delete"), h.RawMaterial.Delete)
		}

		api.GET("/stock", middleware.RequirePermission("stock:view"), h.Stock.Stock)
		api.GET("/transactions", middleware.RequirePermission("stock:view"), h.Stock.Transactions)

		masters := api.Group("/masters")
		{
			masters.POST("", middleware.RequirePermission("masters:create"), h.Master.Create)
			masters.GET("", middleware.RequirePermission("masters:view"), h.Master.List)
			masters.GET("/tree", middleware.RequirePermission("masters:view"), h.Master.Tree)
			masters.GET("/:id", middleware.RequirePermission("masters:view"), h.Master.Get)
			masters.PUT("/:id", middleware.RequirePermission("masters:edit"), h.Master.Update)
			masters.DELETE("/:id", middleware.RequirePermission("masters:delete"), h.Master.Delete)
		}

		permissions := api.Group("/permissions")
		{
			permissions.POST("", middleware.RequirePermission("permissions:create"), h.Permission.Create)
			permissions.GET("", middleware.RequirePermission("permissions:view"), h.Permission.List)
			permissions.GET("/:id", middleware.RequirePermission("permissions:view"), h.Permission.Get)
			permissions.PUT("/:id", middleware.RequirePermission("permissions:edit"), h.Permission.Update)
			permissions.DELETE("/:id", middleware.RequirePermission("permissions:delete"), h.Permission.Delete)
		}

		users := api.Group("/users")
		{
			users.POST("", middleware.RequirePermission("users:create"), h.User.Create)
			users.GET("", middleware.RequirePermission("users:view"), h.User.List)
			users.GET("/:id", middleware.RequirePermission("users:view"), h.User.Get)
			users.PUT("/:id", middleware.RequirePermission("users:edit"), h.User.Update)
			users.DELETE("/:id", middleware.RequirePermission("users:delete"), h.User.Delete)
		}

		vendors := api.Group("/vendors")
		{
			vendors.POST("", middleware.RequirePermission("vendors:create"), h.Vendor.Create)
			vendors.GET("", middleware.RequirePermission("vendors:view"), h.Vendor.List)
			vendors.GET("/:id", middleware.RequirePermission("vendors:view"), h.Vendor.Get)
			vendors.PUT("/:id", middleware.RequirePermission("vendors:edit"), h.Vendor.Update)
			vendors.DELETE("/:id", middleware.RequirePermission("vendors:delete"), h.Vendor.Delete)
		}

		manufacturers := api.Group("/manufacturers")
		{
			manufacturers.POST("", middleware.RequirePermission("manufacturers:create"), h.Manufacturer.Create)
			manufacturers.GET("", middleware.RequirePermission("manufacturers:view"), h.Manufacturer.List)
			manufacturers.GET("/:id", middleware.RequirePermission("manufacturers:view"), h.Manufacturer.Get)
			manufacturers.PUT("/:id", middleware.RequirePermission("manufacturers:edit"), h.Manufacturer.Update)
			manufacturers.DELETE("/:id", middleware.RequirePermission("manufacturers:delete"), h.Manufacturer.Delete)
		}

		api.GET("/activity-logs", middleware.RequirePermission("activity-logs:view"), h.ActivityLog.List)
	}
}
