package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "sneakerhub/internal/app"
	"sneakerhub/internal/bootstrap"
	"sneakerhub/internal/cache"
	"sneakerhub/internal/catalog"
	"sneakerhub/internal/platform/rabbitmq"
	"sneakerhub/internal/repository"
	"sneakerhub/internal/transport/http/handler"
	"sneakerhub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	threadRepo := repository.NewThreadRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	forumService := appsvc.NewForumService(threadRepo, activityPublisher)

	catalogClient := catalog.NewClient(
		app.Config.Catalog.BaseURL,
		app.Config.Catalog.APIToken,
		time.Duration(app.Config.Catalog.RequestTimeoutSeconds)*time.Second,
		app.Config.Catalog.MaxRetries,
	)
	arrivalsClient := catalog.NewArrivalsClient(catalog.ArrivalsConfig{
		APIBaseURL:  app.Config.Arrivals.APIBaseURL,
		WebBaseURL:  app.Config.Arrivals.WebBaseURL,
		AnonymousID: app.Config.Arrivals.AnonymousID,
		ChannelID:   app.Config.Arrivals.ChannelID,
		Country:     app.Config.Arrivals.Country,
		Language:    app.Config.Arrivals.Language,
	}, time.Duration(app.Config.Catalog.RequestTimeoutSeconds)*time.Second)
	buildIDCache := cache.NewBuildIDCache(app.Redis, time.Duration(app.Config.Redis.BuildIDTTLSeconds)*time.Second)
	catalogService := appsvc.NewCatalogService(
		catalogClient,
		arrivalsClient,
		buildIDCache,
		app.Config.Catalog.DefaultPerPage,
		app.Config.Catalog.ReleasesPerPage,
		app.Config.Catalog.MaxPerPage,
	)

	authHandler := handler.NewAuthHandler(authService)
	forumHandler := handler.NewForumHandler(forumService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	profileGroup := router.Group("/profile")
	profileGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	profileGroup.GET("", authHandler.Profile)
	profileGroup.PUT("/update-email", authHandler.UpdateEmail)
	profileGroup.PUT("/update-password", authHandler.UpdatePassword)

	router.GET("/sneakers", catalogHandler.ListSneakers)
	router.GET("/sneaker/:slug/:id", catalogHandler.SneakerDetail)
	router.GET("/unreleased-sneakers", catalogHandler.ListUnreleased)
	router.GET("/nike-arrivals", catalogHandler.Arrivals)

	forumGroup := router.Group("/forum")
	forumGroup.POST("/threads", forumHandler.CreateThread)
	forumGroup.GET("/threads", forumHandler.ListThreads)
	forumGroup.GET("/threads/:id", forumHandler.GetThread)
	forumGroup.PUT("/threads/:id", forumHandler.UpdateThread)
	forumGroup.PUT("/threads/:id/like", forumHandler.LikeThread)
	forumGroup.PUT("/threads/:id/unlike", forumHandler.UnlikeThread)
	forumGroup.DELETE("/threads/:id", forumHandler.DeleteThread)

	return router
}
