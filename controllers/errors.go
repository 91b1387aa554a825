package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrInvalidID = &CustomError{"id must be a positive integer"}
	ErrInternal  = &CustomError{"internal server error"}
)

// respondServiceError memetakan error service ke status HTTP.
// Detail error internal hanya masuk log, tidak pernah ke response.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondError(c, http.StatusNotFound, services.ErrReservationNotFound)
	case errors.Is(err, services.ErrUnknownStation):
		utils.RespondError(c, http.StatusUnprocessableEntity, services.ErrUnknownStation)
	case errors.Is(err, services.ErrInvalidQuery), errors.Is(err, utils.ErrInvalidPagination):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrPoolExhausted):
		c.Header("Retry-After", "1")
		utils.RespondError(c, http.StatusServiceUnavailable, services.ErrPoolExhausted)
	case errors.Is(err, services.ErrUpstreamUnavailable):
		logError(c, err)
		utils.RespondError(c, http.StatusBadGateway, services.ErrUpstreamUnavailable)
	default:
		logError(c, err)
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
	}
}

func logError(c *gin.Context, err error) {
	utils.ErrorLogger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	}).Error(err)
}
