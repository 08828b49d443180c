package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"tipbook/service"
)

type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Ok writes a successful envelope
func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Created writes a successful envelope for a newly created resource
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Error writes an error envelope with the given status
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
	})
}

// respondError maps service errors onto HTTP statuses. Consistency errors log
// at error level since they mean the ledger needs operator attention.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		Error(c, http.StatusBadRequest, err.Error())
	case service.IsPermission(err):
		Error(c, http.StatusForbidden, err.Error())
	case service.IsNotFound(err):
		Error(c, http.StatusNotFound, err.Error())
	case service.IsInvalidState(err):
		Error(c, http.StatusConflict, err.Error())
	case service.IsConsistency(err):
		log.WithError(err).Error("Ledger consistency violation")
		Error(c, http.StatusInternalServerError, err.Error())
	default:
		log.WithError(err).Error("Request failed")
		Error(c, http.StatusInternalServerError, "internal error")
	}
}
