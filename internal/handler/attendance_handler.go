package handler

import (
	"net/http"

	"oms-backend/internal/middleware"
	"oms-backend/internal/service"
	"oms-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/attendance")
	group.Use(middleware.RequireAuth()) // any authenticated user manages their own shift
	{
		group.GET("", h.Status)
		group.POST("/clock-in", h.ClockIn)
		group.POST("/clock-out", h.ClockOut)
	}
}

// ClockIn opens a new attendance session
// @Summary      Clock in
// @Description  Opens an attendance record for the authenticated user. Fails if one is already open.
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  response.Response{data=service.AttendanceResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockIn(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// ClockOut closes the open attendance session
// @Summary      Clock out
// @Description  Closes the user's open attendance record, fixing duration_minutes once.
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.AttendanceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockOut(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// Status reports whether the user is currently clocked in
// @Summary      Attendance status
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.AttendanceStatusResponse}
// @Router       /api/attendance [get]
func (h *AttendanceHandler) Status(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	status, err := h.attendanceService.Status(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}
