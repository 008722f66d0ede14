package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/response"
	"github.com/nekogravitycat/meeting-room-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

// handleError renders reservation errors: validation failures become an
// itemized payload (409 when a time conflict is among them, 400 otherwise),
// lifecycle violations become 409, everything else goes through the shared
// error mapper.
func handleError(c *gin.Context, err error) {
	var verrs *reservation.ValidationErrors
	if errors.As(err, &verrs) {
		status := http.StatusBadRequest
		if verrs.HasConflict() {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error":   "reservation validation failed",
			"details": newValidationErrorItems(verrs.Errors),
		})
		return
	}

	var terr *reservation.TransitionError
	if errors.As(err, &terr) {
		c.JSON(http.StatusConflict, gin.H{"error": terr.Error()})
		return
	}

	response.Error(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Create(c.Request.Context(), auth.GetActor(c), reservation.CreateRequest{
		RoomID:           body.RoomID,
		Title:            body.Title,
		Description:      body.Description,
		StartTime:        body.StartTime,
		EndTime:          body.EndTime,
		ParticipantCount: body.ParticipantCount,
		ParticipantIDs:   body.ParticipantIDs,
		Remarks:          body.Remarks,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), auth.GetActor(c), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := reservation.Filter{
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		Status:    req.Status,
		StartFrom: req.StartFrom,
		StartTo:   req.StartTo,
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	reservations, total, err := h.service.List(c.Request.Context(), auth.GetActor(c), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewReservationResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Update(c.Request.Context(), auth.GetActor(c), req.ID, reservation.UpdateRequest{
		Title:            body.Title,
		Description:      body.Description,
		StartTime:        body.StartTime,
		EndTime:          body.EndTime,
		ParticipantCount: body.ParticipantCount,
		ParticipantIDs:   body.ParticipantIDs,
		Remarks:          body.Remarks,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

// Transition moves a reservation to a new lifecycle status.
func (h *Handler) Transition(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body TransitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.TransitionStatus(c.Request.Context(), auth.GetActor(c), req.ID, reservation.Status(body.Status))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

// Cancel is the owner-facing shortcut for the cancelled transition.
func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), auth.GetActor(c), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), auth.GetActor(c), req.RoomID, day)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": req.Date, "slots": NewTimeSlotResponses(slots)})
}

func (h *Handler) CheckConflict(c *gin.Context) {
	var req CheckConflictRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	count, err := h.service.CheckConflict(c.Request.Context(), auth.GetActor(c), req.RoomID, req.StartTime, req.EndTime, req.ExcludeID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ConflictResponse{Conflict: count > 0, Count: count})
}

// Stats returns company-wide reservation counts. Admin only.
func (h *Handler) Stats(c *gin.Context) {
	var q struct {
		Days int `form:"days" binding:"omitempty,min=1,max=365"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if q.Days == 0 {
		q.Days = 30
	}

	from := time.Now().AddDate(0, 0, -q.Days)
	stats, err := h.service.Stats(c.Request.Context(), auth.GetActor(c), from)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStatsResponse(stats))
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.service.GetConfig(c.Request.Context(), auth.GetActor(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewConfigResponse(cfg))
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var body UpdateConfigRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), auth.GetActor(c), reservation.ConfigUpdateRequest{
		MaxAdvanceDays:      body.MaxAdvanceDays,
		MinDurationMinutes:  body.MinDurationMinutes,
		MaxDurationMinutes:  body.MaxDurationMinutes,
		AllowWeekendBooking: body.AllowWeekendBooking,
		WorkStart:           body.WorkStart,
		WorkEnd:             body.WorkEnd,
		RequireApproval:     body.RequireApproval,
		AutoApproval:        body.AutoApproval,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewConfigResponse(cfg))
}
