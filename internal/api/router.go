package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"parking_system_go/internal/api/handler"
	"parking_system_go/internal/api/middleware"
	"parking_system_go/internal/repository"
	"parking_system_go/internal/service"
)

type RouterDeps struct {
	AuthService    *service.AuthService
	ParkingService *service.ParkingService
	FineService    *service.FineService
	ExitService    *service.ExitService
	AuthMw         *middleware.AuthMiddleware
	WsManager      *handler.WebSocketManager
	Handicapped    repository.PermitRepository
	Reserved       repository.PermitRepository
	Metrics        prometheus.Gatherer
	Logger         *zap.Logger
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Real-time dashboard feed; no auth on the socket itself.
	wsHandler := handler.NewWebSocketHandler(deps.WsManager, deps.Logger)
	r.GET("/ws", wsHandler.HandleWebSocket)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(deps.AuthMw.Authenticate())
	{
		entryH := handler.NewEntryHandler(deps.ParkingService)
		entryRoutes := v1.Group("/entry")
		{
			entryRoutes.POST("/park", entryH.Park)
			entryRoutes.GET("/available-spots", entryH.AvailableSpots)
		}

		exitH := handler.NewExitHandler(deps.ExitService)
		exitRoutes := v1.Group("/exit")
		{
			exitRoutes.POST("/quote", exitH.Quote)
			exitRoutes.POST("/pay", exitH.Pay)
			exitRoutes.POST("/open-gate", exitH.OpenGate)
		}

		adminH := handler.NewAdminHandler(deps.ParkingService, deps.FineService, deps.Handicapped, deps.Reserved)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(deps.AuthMw.AuthorizeRole("admin"))
		{
			adminRoutes.GET("/status", adminH.Status)
			adminRoutes.GET("/transactions", adminH.Transactions)
			adminRoutes.GET("/debts", adminH.Debts)
			adminRoutes.GET("/fine-scheme", adminH.GetFineScheme)
			adminRoutes.PUT("/fine-scheme", adminH.SetFineScheme)

			adminRoutes.GET("/permits/:directory", adminH.ListPermits)
			adminRoutes.POST("/permits/:directory", adminH.GrantPermit)
			adminRoutes.DELETE("/permits/:directory/:plate", adminH.RevokePermit)
		}
	}
	return r
}
