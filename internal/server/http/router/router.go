package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/nurbekov/mealbox/internal/server/http/handlers"
	"github.com/nurbekov/mealbox/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MealboxFacade, realtime handlers.RealtimeServer, adminToken string, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	quotaHandler := handlers.NewQuotaHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)
	wsHandler := handlers.NewWSHandler(realtime)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/login/code", authHandler.RequestLoginCode)
	user.POST("/login/code/verify", authHandler.LoginWithCode)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.PlaceQuick)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/orders/:id/cancel", orderHandler.Cancel)
	authed.POST("/orders/:id/reorder", orderHandler.Reorder)
	authed.POST("/plan/orders", orderHandler.PlacePlan)
	authed.GET("/user/boxes", quotaHandler.Boxes)
	authed.POST("/user/subscription", quotaHandler.Subscribe)
	authed.GET("/user/notifications", notificationHandler.List)
	authed.POST("/user/notifications/:id/read", notificationHandler.MarkRead)
	authed.POST("/user/notifications/read-all", notificationHandler.MarkAllRead)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(adminToken))
	admin.DELETE("/orders/:id", orderHandler.Purge)

	ws := engine.Group("/ws")
	ws.Use(middleware.AuthRequired(facade))
	ws.GET("", wsHandler.Connect)

	return engine
}
