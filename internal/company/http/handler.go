package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/company"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/response"
)

type Handler struct {
	service company.Service
}

func NewHandler(service company.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListCompaniesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := company.Filter{
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: req.SortOrder,
	}

	companies, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CompanyResponse, len(companies))
	for i, co := range companies {
		items[i] = NewCompanyResponse(co)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	co, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCompanyResponse(co))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCompanyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	// The creating user becomes the company's designated admin.
	actor := auth.GetActor(c)

	co, err := h.service.Create(c.Request.Context(), company.CreateRequest{
		Name:        body.Name,
		AdminUserID: actor.UserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCompanyResponse(co))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateCompanyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !auth.CanManage(auth.GetActor(c), req.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	co, err := h.service.Update(c.Request.Context(), req.ID, company.UpdateRequest{
		Name:        body.Name,
		AdminUserID: body.AdminUserID,
		IsActive:    body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCompanyResponse(co))
}

func (h *Handler) Deactivate(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if !auth.CanManage(auth.GetActor(c), req.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
