package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	httpresp.OK(c, gin.H{
		"user":       id,
		"is_manager": id.IsManager(),
	})
}
