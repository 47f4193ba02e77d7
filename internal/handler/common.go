package handler

import (
	"net/http"

	"oms-backend/internal/service"
	"oms-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentActor rebuilds the authenticated principal from the context values
// set by the auth middleware.
func currentActor(c *gin.Context) (service.Actor, bool) {
	rawID, ok := c.Get("userID")
	if !ok {
		return service.Actor{}, false
	}
	idStr, ok := rawID.(string)
	if !ok {
		return service.Actor{}, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return service.Actor{}, false
	}

	role, _ := c.Get("userRole")
	roleStr, _ := role.(string)
	superuser, _ := c.Get("isSuperuser")
	superuserBool, _ := superuser.(bool)

	return service.Actor{ID: id, Role: roleStr, IsSuperuser: superuserBool}, true
}

// mustActor aborts with 401 when no principal is on the context.
func mustActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authentication required"))
	}
	return actor, ok
}

// respondError maps service errors to their HTTP class via the apperr kind.
func respondError(c *gin.Context, err error) {
	code, body := response.FromError(err)
	c.JSON(code, body)
}

// parseIDParam parses the :id path segment as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid id parameter"))
		return uuid.Nil, false
	}
	return id, true
}
