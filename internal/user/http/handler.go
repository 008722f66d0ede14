package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/response"
	"github.com/nekogravitycat/meeting-room-backend/internal/user"
)

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
	auditor    audit.Recorder
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager, auditor audit.Recorder) *Handler {
	return &Handler{service: service, jwtManager: jwtManager, auditor: auditor}
}

func (h *Handler) Register(c *gin.Context) {
	var body RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.RegisterRequest{
		Email:       body.Email,
		Password:    body.Password,
		DisplayName: body.DisplayName,
		CompanyID:   body.CompanyID,
		Phone:       body.Phone,
		Department:  body.Department,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewUserResponse(u))
}

func (h *Handler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A designated company admin keeps admin authority even with the
	// regular role, so resolve the effective role before signing.
	role := u.Role
	if isAdmin, err := h.service.IsCompanyAdmin(c.Request.Context(), u); err == nil && isAdmin {
		role = auth.RoleAdmin
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email, u.CompanyID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditor.Record(c.Request.Context(), audit.Entry{
		CompanyID:   u.CompanyID,
		UserID:      u.ID,
		Action:      audit.ActionLogin,
		Entity:      "user",
		EntityID:    u.ID,
		Description: "user logged in",
		IP:          c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	actor := auth.GetActor(c)
	if actor.UserID != u.ID && !auth.CanManage(actor, u.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// List returns the users of the actor's company. Admin only.
func (h *Handler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	actor := auth.GetActor(c)
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	filter := user.Filter{
		CompanyID: actor.CompanyID,
		Role:      req.Role,
		IsActive:  req.IsActive,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	users, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	target, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	actor := auth.GetActor(c)
	isSelf := actor.UserID == target.ID
	isMgr := auth.CanManage(actor, target.CompanyID)

	if !isSelf && !isMgr {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	// Only a company admin can change roles or deactivate accounts.
	if (body.Role != nil || body.IsActive != nil) && !isMgr {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	u, err := h.service.Update(c.Request.Context(), req.ID, user.UpdateRequest{
		DisplayName: body.DisplayName,
		Role:        body.Role,
		Phone:       body.Phone,
		Department:  body.Department,
		IsActive:    body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}
