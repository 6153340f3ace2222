package api

import (
	"github.com/gin-gonic/gin"

	"github.com/sfwannn/AssingentOOAD/internal/api/handler"
	"github.com/sfwannn/AssingentOOAD/internal/api/middleware"
	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/service"
)

func SetupRouter(as *service.AuthService, ps *service.ParkingService, gs *service.GateService,
	lprService *service.LPRService, authMw *middleware.AuthMiddleware, wsManager *handler.WebSocketManager) *gin.Engine {
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

	// WebSocket endpoint (không cần auth cho real-time connection)
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(as)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		parkingH := handler.NewParkingHandler(ps)

		facilityRoutes := v1.Group("/facility")
		{
			facilityRoutes.GET("/spots", parkingH.ListSpots)
			facilityRoutes.GET("/availability", parkingH.Availability)
		}

		parkingRoutes := v1.Group("/parking")
		{
			parkingRoutes.POST("/check-in", parkingH.VehicleCheckIn)
			parkingRoutes.POST("/check-out", parkingH.VehicleCheckOut)
			parkingRoutes.GET("/quote", parkingH.Quote)
			parkingRoutes.GET("/sessions", parkingH.ListOpenSessions)
			parkingRoutes.GET("/sessions/:plate", parkingH.GetSessionByPlate)
		}

		v1.GET("/payments/:plate", parkingH.PaymentsForPlate)
		v1.GET("/revenue", authMw.AuthorizeRole(domain.RoleAdmin), parkingH.TotalRevenue)

		fineH := handler.NewFineHandler(ps)
		fineRoutes := v1.Group("/fines")
		{
			fineRoutes.POST("/misuse", authMw.AuthorizeRole(domain.RoleAdmin, domain.RoleOperator), fineH.IssueMisuseFine)
			fineRoutes.GET("", fineH.ListOutstandingFines)
			fineRoutes.GET("/:plate", fineH.OutstandingForPlate)
		}

		schemeRoutes := v1.Group("/fine-schemes")
		{
			schemeRoutes.POST("/activate", authMw.AuthorizeRole(domain.RoleAdmin), fineH.ActivateScheme)
			schemeRoutes.GET("/history", fineH.SchemeHistory)
		}

		registryH := handler.NewPlateRegistryHandler(ps)
		plateRoutes := v1.Group("/plates")
		plateRoutes.Use(authMw.AuthorizeRole(domain.RoleAdmin))
		{
			plateRoutes.POST("/reserved", registryH.RegisterReserved)
			plateRoutes.GET("/reserved", registryH.ListReserved)
			plateRoutes.DELETE("/reserved/:plate", registryH.UnregisterReserved)
			plateRoutes.POST("/card-holders", registryH.RegisterCardHolder)
			plateRoutes.GET("/card-holders", registryH.ListCardHolders)
			plateRoutes.DELETE("/card-holders/:plate", registryH.UnregisterCardHolder)
		}

		if gs != nil {
			gateH := handler.NewGateHandler(gs)
			gateRoutes := v1.Group("/gate")
			gateRoutes.Use(authMw.AuthorizeRole(domain.RoleAdmin, domain.RoleOperator))
			{
				gateRoutes.POST("/barrier", gateH.ControlBarrier)
			}
		}

		if lprService != nil {
			lprH := handler.NewLPRHandler(lprService)
			lprRoutes := v1.Group("/lpr")
			lprRoutes.Use(authMw.AuthorizeRole(domain.RoleAdmin, domain.RoleOperator))
			{
				lprRoutes.POST("/process-image", lprH.ProcessImage)
			}
		}
	}
	return r
}
