package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ridetogether.backend/internal/config"
	"ridetogether.backend/internal/infrastructure/email"
	"ridetogether.backend/internal/infrastructure/jobs"
	"ridetogether.backend/internal/infrastructure/repositories"
	"ridetogether.backend/internal/interfaces/http/handlers"
	"ridetogether.backend/internal/usecases"
	"ridetogether.backend/pkg/jwt"
	"ridetogether.backend/pkg/logger"
	"ridetogether.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis. A missing Redis degrades OTP rate limiting
	// (fail-open) rather than blocking startup.
	var otpLimiter usecases.OTPLimiter
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, OTP rate limiting disabled", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Redis initialized")
		otpLimiter = redis.NewRateLimiter("otp", cfg.OTP.RateLimit, cfg.OTP.RateWindow)
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	rideRepo := repositories.NewRideRepository(db)

	// Initialize mailer
	mailer := email.NewSMTPMailer(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		From:      cfg.SMTP.From,
		SupportTo: cfg.SMTP.SupportTo,
	})

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, otpRepo, mailer, otpLimiter, jwtService)
	rideUsecase := usecases.NewRideUsecase(rideRepo)
	contactUsecase := usecases.NewContactUsecase(mailer)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	rideHandler := handlers.NewRideHandler(rideUsecase)
	contactHandler := handlers.NewContactHandler(contactUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := jobs.NewOTPExpiryJob(otpRepo)
	go sweeper.Start(ctx)

	// Initialize router
	r := newRouter(routeDeps{
		authHandler:    authHandler,
		rideHandler:    rideHandler,
		contactHandler: contactHandler,
		jwtService:     jwtService,
		userRepo:       userRepo,
		rideRepo:       rideRepo,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		sweeper.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 RideTogether Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
