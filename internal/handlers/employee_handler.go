package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type Roster interface {
	Employees() []string
}

type EmployeeHandler struct {
	roster Roster
}

func NewEmployeeHandler(r Roster) *EmployeeHandler {
	return &EmployeeHandler{roster: r}
}

// List returns the bookable roster. Employees only see themselves.
func (h *EmployeeHandler) List(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	if !id.IsManager() {
		httpresp.List(c, []string{id.Name})
		return
	}
	httpresp.List(c, h.roster.Employees())
}
