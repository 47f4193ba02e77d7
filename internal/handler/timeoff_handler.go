package handler

import (
	"net/http"

	"oms-backend/internal/middleware"
	"oms-backend/internal/model"
	"oms-backend/internal/service"
	"oms-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TimeOffHandler struct {
	timeOffService service.TimeOffService
}

func NewTimeOffHandler(timeOffService service.TimeOffService) *TimeOffHandler {
	return &TimeOffHandler{timeOffService: timeOffService}
}

func (h *TimeOffHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/hr/time-off")
	{
		group.POST("", middleware.RequireAuth(), h.Request)
		group.GET("", middleware.RequireRole(model.OverrideRoles...), h.ListPending)
		group.PATCH("/:id/approve", middleware.RequireRole(model.OverrideRoles...), h.Decide)
	}
}

// Request submits a new time-off request
// @Summary      Request time off
// @Description  Creates a Request-status record bound to the caller's reporting manager. Balance-checked at submit time.
// @Tags         time-off
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.TimeOffRequestDTO  true  "Time Off Request"
// @Success      201      {object}  response.Response{data=service.TimeOffResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/hr/time-off [post]
func (h *TimeOffHandler) Request(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.TimeOffRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.timeOffService.Request(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListPending returns the caller's pending approval queue
// @Summary      List pending time-off requests
// @Tags         time-off
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.TimeOffResponse}
// @Router       /api/hr/time-off [get]
func (h *TimeOffHandler) ListPending(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	requests, err := h.timeOffService.ListPending(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// Decide approves or rejects a pending request
// @Summary      Decide a time-off request
// @Description  Approves (with atomic balance debit) or rejects a pending request scoped to the caller.
// @Tags         time-off
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Request ID"
// @Param        payload  body      service.TimeOffDecisionDTO  true  "Decision"
// @Success      200      {object}  response.Response{data=service.TimeOffResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/hr/time-off/{id}/approve [patch]
func (h *TimeOffHandler) Decide(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.TimeOffDecisionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.timeOffService.Decide(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
