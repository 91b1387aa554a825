package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bike-reservation/config"
	"github.com/yeremiapane/bike-reservation/controllers"
	"github.com/yeremiapane/bike-reservation/middlewares"
	"github.com/yeremiapane/bike-reservation/services"
)

// Dependencies dikonstruksi di main dan disuntikkan ke controller.
type Dependencies struct {
	Config   *config.Config
	Store    *services.Store
	NSClient *services.NSClient
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Kedua bentuk path (dengan/tanpa trailing slash) didaftarkan eksplisit.
	r.RedirectTrailingSlash = false

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	rateLimiter := middlewares.NewRateLimiter(deps.Config.Server.RateLimitRPS, deps.Config.Server.RateLimitBurst)
	r.Use(rateLimiter.RateLimit())

	maxTake := deps.Config.Database.MaxTake

	// Inisialisasi controller
	reservationCtrl := controllers.NewReservationController(services.NewReservationService(deps.Store), maxTake)
	stationCtrl := controllers.NewStationController(services.NewStationService(deps.Store), maxTake)
	departureCtrl := controllers.NewDepartureController(services.NewDepartureService(deps.NSClient))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// RESERVATIONS
	handle(r, http.MethodPost, "/reservation", reservationCtrl.CreateReservation)
	handle(r, http.MethodGet, "/reservation", reservationCtrl.GetAllReservations)
	handle(r, http.MethodGet, "/reservation/:id", reservationCtrl.GetReservationByID)
	handle(r, http.MethodPut, "/reservation/:id", reservationCtrl.UpdateReservation)
	handle(r, http.MethodDelete, "/reservation/:id", reservationCtrl.DeleteReservation)
	handle(r, http.MethodGet, "/user/:user", reservationCtrl.GetReservationsByUser)

	// STATIONS & DEPARTURES (read-only)
	handle(r, http.MethodGet, "/station", stationCtrl.GetAllStations)
	handle(r, http.MethodGet, "/ns_departures", departureCtrl.GetDepartures)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "route not found"})
	})

	return r
}

// handle mendaftarkan path dengan dan tanpa trailing slash.
func handle(r *gin.Engine, method, path string, h gin.HandlerFunc) {
	r.Handle(method, path, h)
	r.Handle(method, path+"/", h)
}
