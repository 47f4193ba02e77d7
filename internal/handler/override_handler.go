package handler

import (
	"net/http"

	"oms-backend/internal/middleware"
	"oms-backend/internal/model"
	"oms-backend/internal/service"
	"oms-backend/pkg/pagination"
	"oms-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type OverrideHandler struct {
	overrideService service.OverrideService
}

func NewOverrideHandler(overrideService service.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrideService: overrideService}
}

func (h *OverrideHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/managers/status/override", middleware.RequireRole(model.OverrideRoles...), h.Override)
	router.GET("/api/audit/status", middleware.RequireRole(model.RoleHLM, model.RoleMLM), h.AuditLog)
}

// Override forces an employee's attendance status to Unavailable
// @Summary      Override staff status
// @Description  Forces an on-shift employee's status, writing the audit row in the same transaction.
// @Tags         managers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.OverrideRequest  true  "Override Payload"
// @Success      200      {object}  response.Response{data=service.OverrideResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/managers/status/override [post]
func (h *OverrideHandler) Override(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.overrideService.Override(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// AuditLog returns the paginated staff status audit trail
// @Summary      Staff status audit log
// @Tags         managers
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/audit/status [get]
func (h *OverrideHandler) AuditLog(c *gin.Context) {
	params := pagination.Parse(c)

	audits, total, err := h.overrideService.ListAudits(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"audits":     audits,
		"pagination": pagination.NewMeta(params, total),
	}))
}
