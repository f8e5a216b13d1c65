package handler

import (
	"net/http"

	"focusflow/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboards *service.DashboardService
}

func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Get returns the quadrant dashboard for the authenticated user
// @Summary  Dashboard snapshot
// @Tags     Dashboard
// @Produce  json
// @Param    filter query string false "overdue to show only overdue todos, all to include completed"
// @Success  200 {object} service.Dashboard
// @Security BearerAuth
// @Router   /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	opts := service.DashboardOptions{}
	switch c.Query("filter") {
	case "overdue":
		opts.OverdueOnly = true
	case "all":
		opts.IncludeCompleted = true
	}

	dash, err := h.dashboards.Snapshot(c.Request.Context(), userID, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
