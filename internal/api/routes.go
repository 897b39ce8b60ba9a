package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movi/internal/api/handlers"
	"movi/internal/api/middleware"
	"movi/internal/domain/entities"
)

type Router struct {
	sessions       middleware.SessionResolver
	sessionHandler *handlers.SessionHandler
	rideHandler    *handlers.RideHandler
	driverHandler  *handlers.DriverHandler
	mapHandler     *handlers.MapHandler
	supportHandler *handlers.SupportHandler
	catalogHandler *handlers.CatalogHandler
	streamHandler  *handlers.StreamHandler
}

func NewRouter(
	sessions middleware.SessionResolver,
	sessionHandler *handlers.SessionHandler,
	rideHandler *handlers.RideHandler,
	driverHandler *handlers.DriverHandler,
	mapHandler *handlers.MapHandler,
	supportHandler *handlers.SupportHandler,
	catalogHandler *handlers.CatalogHandler,
	streamHandler *handlers.StreamHandler,
) *Router {
	return &Router{
		sessions:       sessions,
		sessionHandler: sessionHandler,
		rideHandler:    rideHandler,
		driverHandler:  driverHandler,
		mapHandler:     mapHandler,
		supportHandler: supportHandler,
		catalogHandler: catalogHandler,
		streamHandler:  streamHandler,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Reference data and session creation need no session.
	engine.GET("/vehicles", r.catalogHandler.ListVehicles)
	engine.GET("/drivers", r.catalogHandler.ListDrivers)
	engine.GET("/drivers/:id", r.catalogHandler.GetDriver)
	engine.POST("/sessions", r.sessionHandler.CreateSession)

	api := engine.Group("/")
	api.Use(middleware.SessionAuth(r.sessions))
	{
		api.GET("/session", r.sessionHandler.GetSession)
		api.DELETE("/session", r.sessionHandler.CloseSession)
		api.PUT("/session/mode", r.sessionHandler.SetMode)

		api.GET("/ride", r.rideHandler.GetRide)
		api.POST("/ride/reset", r.rideHandler.ResetRide)
		api.GET("/map", r.mapHandler.GetMap)

		api.GET("/support/messages", r.supportHandler.GetMessages)
		api.POST("/support/messages", r.supportHandler.SendMessage)

		api.GET("/ws", r.streamHandler.Stream)

		passenger := api.Group("/ride")
		passenger.Use(middleware.RequireMode(entities.ViewModePassenger))
		{
			passenger.POST("/request", r.rideHandler.RequestRide)
			passenger.POST("/cancel", r.rideHandler.CancelRide)
			passenger.POST("/emergency", r.rideHandler.ReportEmergency)
		}

		driver := api.Group("/driver/ride")
		driver.Use(middleware.RequireMode(entities.ViewModeDriver))
		{
			driver.POST("/accept", r.driverHandler.AcceptRide)
			driver.POST("/decline", r.driverHandler.DeclineRide)
			driver.POST("/complete", r.driverHandler.CompleteRide)
			driver.GET("/navigate", r.driverHandler.Navigate)
		}
	}
}
