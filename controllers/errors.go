package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook/services"
	"github.com/medibook/medibook/utils"
)

// respondError maps the typed service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var gatewayErr *services.GatewayError

	switch {
	case errors.As(err, &validationErr):
		utils.ValidationError(c, validationErr.Message, gin.H{"field": validationErr.Field})
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateOrder):
		utils.Conflict(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.Conflict(c, err.Error(), nil)
	case errors.As(err, &gatewayErr):
		utils.BadGateway(c, "Payment gateway error", gatewayErr.Error())
	default:
		utils.LogError("Unhandled error: %v", err)
		utils.InternalServerError(c, "Something went wrong", err.Error())
	}
}
