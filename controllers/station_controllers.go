package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

type StationController struct {
	Service *services.StationService
	MaxTake int
}

func NewStationController(svc *services.StationService, maxTake int) *StationController {
	return &StationController{Service: svc, MaxTake: maxTake}
}

// GetAllStations -> GET /station/?skip=&take=
func (sc *StationController) GetAllStations(c *gin.Context) {
	page, ok := bindPagination(c, sc.MaxTake)
	if !ok {
		return
	}

	stations, err := sc.Service.List(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of stations", stations)
}
