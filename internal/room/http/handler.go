package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/response"
	"github.com/nekogravitycat/meeting-room-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

// List returns the rooms of the actor's company.
func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	actor := auth.GetActor(c)
	filter := room.Filter{
		CompanyID:   actor.CompanyID,
		Search:      req.Search,
		IsAvailable: req.IsAvailable,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}

	rooms, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actor := auth.GetActor(c)
	rm, err := h.service.GetForCompany(c.Request.Context(), req.ID, actor.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

// Create adds a room to the actor's company. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor := auth.GetActor(c)
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		CompanyID: actor.CompanyID,
		Name:      body.Name,
		Location:  body.Location,
		Capacity:  body.Capacity,
		Remarks:   body.Remarks,
	}, actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := auth.GetActor(c)
	if _, err := h.service.GetForCompany(c.Request.Context(), req.ID, actor.CompanyID); err != nil {
		response.Error(c, err)
		return
	}
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	rm, err := h.service.Update(c.Request.Context(), req.ID, room.UpdateRequest{
		Name:        body.Name,
		Location:    body.Location,
		Capacity:    body.Capacity,
		IsAvailable: body.IsAvailable,
		Remarks:     body.Remarks,
	}, actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) ToggleAvailability(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actor := auth.GetActor(c)
	if _, err := h.service.GetForCompany(c.Request.Context(), req.ID, actor.CompanyID); err != nil {
		response.Error(c, err)
		return
	}
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	rm, err := h.service.ToggleAvailability(c.Request.Context(), req.ID, actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actor := auth.GetActor(c)
	if _, err := h.service.GetForCompany(c.Request.Context(), req.ID, actor.CompanyID); err != nil {
		response.Error(c, err)
		return
	}
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, actor.UserID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
