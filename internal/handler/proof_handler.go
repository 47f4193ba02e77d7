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

type ProofHandler struct {
	proofService service.ProofService
}

func NewProofHandler(proofService service.ProofService) *ProofHandler {
	return &ProofHandler{proofService: proofService}
}

func (h *ProofHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Role split per proof type is enforced in the service; the routes just
	// require a principal.
	router.POST("/api/proofs/upload", middleware.RequireAuth(), h.SubmitProof)
	router.GET("/api/proofs/order/:id", middleware.RequireRole(model.RoleHLM, model.RoleMLM, model.RoleFrontDesk), h.ListByOrder)

	router.POST("/api/tracking", middleware.RequireRole(model.RoleDelivery), h.SubmitPing)
	router.GET("/api/audit/gps", middleware.RequireRole(model.RoleHLM, model.RoleMLM), h.GPSHistory)
}

// SubmitProof records proof of execution and advances the order
// @Summary      Upload proof of execution
// @Description  Records a QC or POD photo reference and advances the order status as one atomic unit.
// @Tags         proofs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitProofRequest  true  "Proof Payload"
// @Success      201      {object}  response.Response{data=service.ProofResponse}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/proofs/upload [post]
func (h *ProofHandler) SubmitProof(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	proof, err := h.proofService.SubmitProof(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, proof))
}

// ListByOrder returns all proofs attached to an order
// @Summary      List proofs for an order
// @Tags         proofs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=[]model.ProofOfExecutionRecord}
// @Router       /api/proofs/order/{id} [get]
func (h *ProofHandler) ListByOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	proofs, err := h.proofService.ListProofsByOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, proofs))
}

// SubmitPing appends a GPS tracking ping
// @Summary      Submit GPS ping
// @Description  Appends a location sample for a dispatched order assigned to the caller. Requires an open shift.
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitPingRequest  true  "Ping Payload"
// @Success      201      {object}  response.Response{data=service.PingResponse}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/tracking [post]
func (h *ProofHandler) SubmitPing(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.SubmitPingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	ping, err := h.proofService.SubmitPing(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, ping))
}

// GPSHistory returns the paginated tracking audit stream
// @Summary      GPS tracking history
// @Tags         tracking
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/audit/gps [get]
func (h *ProofHandler) GPSHistory(c *gin.Context) {
	params := pagination.Parse(c)

	pings, total, err := h.proofService.ListPings(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"pings":      pings,
		"pagination": pagination.NewMeta(params, total),
	}))
}
