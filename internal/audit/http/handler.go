package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/response"
)

type Handler struct {
	service audit.Service
}

func NewHandler(service audit.Service) *Handler {
	return &Handler{service: service}
}

// List returns the audit trail of the actor's company. Admin only.
func (h *Handler) List(c *gin.Context) {
	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	actor := auth.GetActor(c)
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	filter := audit.Filter{
		CompanyID: actor.CompanyID,
		UserID:    req.UserID,
		Action:    req.Action,
		Entity:    req.Entity,
		From:      req.From,
		To:        req.To,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	entries, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewEntryResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}
