package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/usuarios-backend/docs"
	httphandlers "github.com/rafabene/usuarios-backend/internal/handlers/http"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/config"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/i18n"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/logging"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/metrics"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/persistence/gormdb"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/security"
	"github.com/rafabene/usuarios-backend/internal/services"
)

//	@title						Usuarios API
//	@version					1.0
//	@description				CRUD de usuários com remoção lógica, busca filtrada e cadastro em lote.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer <token>

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting usuarios backend",
		"env", cfg.Env,
		"db_driver", cfg.Database.Driver,
	)

	// Conectar ao banco de dados
	db, err := gormdb.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	defer func() {
		if err := gormdb.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Inicializar i18n
	i18nService, err := i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := gormdb.NewUserRepository(db)
	uow := gormdb.NewUnitOfWork(db)

	// Segurança e métricas
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	jwtManager := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	appMetrics := metrics.New("usuarios")

	// Inicializar services
	userService := services.NewUserService(userRepo, uow, hasher, appMetrics, logger)
	authService := services.NewAuthService(userRepo, hasher, jwtManager, cfg.Security.AdminEmails, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	docs.SwaggerInfo.Host = cfg.Server.Host + ":" + cfg.Server.Port

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
		I18n:           i18nService,
		Metrics:        appMetrics,
		Users:          userService,
		Tokens:         jwtManager,
		UserHandler:    httphandlers.NewUserHandler(userService, logger),
		AuthHandler:    httphandlers.NewAuthHandler(authService, jwtManager.TTL()),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
