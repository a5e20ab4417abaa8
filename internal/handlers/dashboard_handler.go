package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/dashboard"
)

type DashboardHandler struct {
	metrics *dashboard.GetMetrics
}

func NewDashboardHandler(metrics *dashboard.GetMetrics) *DashboardHandler {
	return &DashboardHandler{metrics: metrics}
}

func (h *DashboardHandler) Metrics(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	m, err := h.metrics.Execute(c.Request.Context(), id, c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, m)
}
