package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/korefit/studio-api/internal/domain/booking"
	"github.com/korefit/studio-api/internal/httperr"
	"github.com/korefit/studio-api/internal/httpresp"
)

type CancellationListHandler struct {
	repo domain.Repository
}

func NewCancellationListHandler(repo domain.Repository) *CancellationListHandler {
	return &CancellationListHandler{repo: repo}
}

func (h *CancellationListHandler) List(c *gin.Context) {
	status := c.Query("status")

	requests, err := h.repo.ListCancellationRequests(c.Request.Context(), status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, requests)
}
