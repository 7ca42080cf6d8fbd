package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/usuarios-backend/docs"
	"github.com/rafabene/usuarios-backend/internal/domain/entities"
	"github.com/rafabene/usuarios-backend/internal/domain/ports"
	"github.com/rafabene/usuarios-backend/internal/handlers/dto"
	"github.com/rafabene/usuarios-backend/internal/handlers/middleware"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/i18n"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/metrics"
)

// RouterDeps reúne as dependências das rotas
type RouterDeps struct {
	Env            string
	BaseURL        string
	AllowedOrigins string
	Logger         ports.Logger
	I18n           *i18n.Service
	Metrics        *metrics.Metrics
	Users          UserChecker
	Tokens         TokenParser
	UserHandler    *UserHandler
	AuthHandler    *AuthHandler
}

// NewRouter monta o engine Gin com middlewares e rotas da API
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.BaseURL(deps.BaseURL),
		middleware.NewI18nMiddleware(deps.I18n).DetectLanguage(),
		middleware.CORS(deps.AllowedOrigins),
	)
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"env":     deps.Env,
			"message": dto.T(c, "message.healthy"),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Guards das rotas por id: id numérico, usuário existente, token e permissão
	byID := func(permission entities.Permission) gin.HandlerFunc {
		return Chain(
			NumericID(),
			UserExists(deps.Users, deps.Logger),
			BearerToken(deps.Tokens),
			Permission(permission),
		)
	}

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/create", deps.UserHandler.CreateUser)
			users.GET("/getAllUsers", deps.UserHandler.GetAllUsers)
			users.GET("/findUsers", deps.UserHandler.FindUsers)
			users.POST("/bulkCreate", deps.UserHandler.BulkCreate)
			users.POST("/login", deps.AuthHandler.Login)

			users.GET("/:id", byID(entities.PermissionUserRead), deps.UserHandler.GetUser)
			users.PUT("/:id", byID(entities.PermissionUserWrite), deps.UserHandler.UpdateUser)
			users.DELETE("/:id", byID(entities.PermissionUserDelete), deps.UserHandler.DeleteUser)
		}
	}

	return router
}
