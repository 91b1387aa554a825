package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

type ReservationController struct {
	Service *services.ReservationService
	MaxTake int
}

func NewReservationController(svc *services.ReservationService, maxTake int) *ReservationController {
	return &ReservationController{Service: svc, MaxTake: maxTake}
}

// CreateReservation -> POST /reservation/
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var in models.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := in.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// UpdateReservation -> PUT /reservation/:id/, mengganti seluruh field
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := in.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	outcome, reservation, err := rc.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if outcome == services.UpdateNotFound {
		respondServiceError(c, services.ErrReservationNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// GetAllReservations -> GET /reservation/?skip=&take=
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	page, ok := rc.bindPage(c)
	if !ok {
		return
	}

	reservations, err := rc.Service.List(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> GET /reservation/:id/
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// DeleteReservation -> DELETE /reservation/:id/
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := rc.Service.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if outcome == services.DeleteNotFound {
		respondServiceError(c, services.ErrReservationNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Reservation with id: %d deleted successfully!", id), gin.H{
		"reserve_id": id,
	})
}

// GetReservationsByUser -> GET /user/:user/?skip=&take=
func (rc *ReservationController) GetReservationsByUser(c *gin.Context) {
	user := c.Param("user")
	page, ok := rc.bindPage(c)
	if !ok {
		return
	}

	reservations, err := rc.Service.ListByUser(c.Request.Context(), user, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations of user "+user, reservations)
}

func (rc *ReservationController) bindPage(c *gin.Context) (utils.Pagination, bool) {
	return bindPagination(c, rc.MaxTake)
}

func bindPagination(c *gin.Context, maxTake int) (utils.Pagination, bool) {
	var page utils.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return page, false
	}
	page, err := page.Normalize(maxTake)
	if err != nil {
		respondServiceError(c, err)
		return page, false
	}
	return page, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}
