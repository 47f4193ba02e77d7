package handler

import (
	"net/http"

	"oms-backend/internal/middleware"
	"oms-backend/internal/service"
	"oms-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VisitHandler struct {
	visitService service.VisitService
}

func NewVisitHandler(visitService service.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

func (h *VisitHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/visits")
	group.Use(middleware.RequireAuth()) // ownership scoping happens in the service
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
	}
}

// Create plans a new sales visit
// @Summary      Create visit plan
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateVisitRequest  true  "Visit Plan"
// @Success      201      {object}  response.Response{data=service.VisitResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/visits [post]
func (h *VisitHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	plan, err := h.visitService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, plan))
}

// Update records a visit outcome
// @Summary      Update visit plan
// @Description  Updates status and notes. missed_remark is mandatory when marking a visit Missed.
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Visit ID"
// @Param        payload  body      service.UpdateVisitRequest  true  "Visit Outcome"
// @Success      200      {object}  response.Response{data=service.VisitResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/visits/{id} [patch]
func (h *VisitHandler) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req service.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	plan, err := h.visitService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}

// List returns the caller's visit plans (all plans for managers)
// @Summary      List visit plans
// @Tags         visits
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.VisitResponse}
// @Router       /api/visits [get]
func (h *VisitHandler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	plans, err := h.visitService.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plans))
}
