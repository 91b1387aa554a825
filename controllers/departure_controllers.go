package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

type DepartureController struct {
	Service *services.DepartureService
}

func NewDepartureController(svc *services.DepartureService) *DepartureController {
	return &DepartureController{Service: svc}
}

// GetDepartures -> GET /ns_departures/?date_time=&uic_code=&max_journeys=
// Tidak ada data yang disimpan; respons NS hanya dibentuk ulang.
func (dc *DepartureController) GetDepartures(c *gin.Context) {
	var q services.DepartureQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	departures, err := dc.Service.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of departures", departures)
}
