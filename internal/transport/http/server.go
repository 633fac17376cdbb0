package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gopherpress/internal/app"
	"gopherpress/internal/bootstrap"
	"gopherpress/internal/cache"
	"gopherpress/internal/platform/rabbitmq"
	"gopherpress/internal/repository"
	"gopherpress/internal/transport/http/handler"
	"gopherpress/internal/transport/http/middleware"
)

// NewRouter builds the full route table. Authentication is expressed
// by route grouping: everything inside the bearer-guarded groups runs
// through AuthJWT, everything else is public.
func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLog(app.Logger), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	articleRepo := repository.NewArticleRepository(app.MySQL)
	articleCache := cache.NewArticleCache(app.Redis, time.Duration(app.Config.Cache.TTLSeconds)*time.Second)
	eventPublisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ArticleEventQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
		app.Config.Auth.BcryptCost,
	)
	articleService := appsvc.NewArticleService(articleRepo, userRepo, articleCache, eventPublisher, app.Logger)

	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)

	authGroup := router.Group("/auth")
	authGroup.POST("/sign-up", authHandler.SignUp)
	authGroup.POST("/sign-in", authHandler.SignIn)

	articleGroup := router.Group("/article")
	articleGroup.GET("/:id", articleHandler.FindByID)
	articleGroup.POST("", articleHandler.FindMany)

	articleAuthGroup := router.Group("/article")
	articleAuthGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	articleAuthGroup.POST("/new", articleHandler.Create)
	articleAuthGroup.PUT("/:id", articleHandler.Update)
	articleAuthGroup.DELETE("/:id", articleHandler.Delete)

	return router
}
