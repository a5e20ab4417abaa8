package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type ServiceLister interface {
	List() []catalog.ServiceDefinition
}

type ServiceHandler struct {
	catalog ServiceLister
}

func NewServiceHandler(c ServiceLister) *ServiceHandler {
	return &ServiceHandler{catalog: c}
}

// List returns the catalog, optionally narrowed by ?category= and a
// case-insensitive ?query= on the name.
func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	out := []catalog.ServiceDefinition{}
	for _, d := range h.catalog.List() {
		if category != "" && strings.ToLower(d.Category) != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(d.Name), query) {
			continue
		}
		out = append(out, d)
	}

	httpresp.List(c, out)
}
