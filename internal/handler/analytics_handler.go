package handler

import (
	"net/http"
	"time"

	"oms-backend/internal/middleware"
	"oms-backend/internal/model"
	"oms-backend/internal/service"
	"oms-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/analytics/kpis", middleware.RequireRole(model.RoleHLM), h.GetKPIs)
}

// GetKPIs returns aggregated dashboard metrics
// @Summary      Get KPIs
// @Description  Order throughput, cycle time, and compliance aggregates. Defaults to the last 30 days.
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=model.KPIResponse}
// @Router       /api/analytics/kpis [get]
func (h *AnalyticsHandler) GetKPIs(c *gin.Context) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD"))
			return
		}
		startDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD"))
			return
		}
		// Include the whole end day
		endDate = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	kpis, err := h.analyticsService.GetKPIs(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, kpis))
}
