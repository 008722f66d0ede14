package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/file"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/request"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/response"
	"github.com/nekogravitycat/meeting-room-backend/internal/room"
)

type Handler struct {
	service     file.Service
	roomService room.Service
}

func NewHandler(service file.Service, roomService room.Service) *Handler {
	return &Handler{service: service, roomService: roomService}
}

// Upload accepts a multipart photo for a room. Admin only.
func (h *Handler) Upload(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actor := auth.GetActor(c)
	rm, err := h.roomService.GetForCompany(c.Request.Context(), req.ID, actor.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer f.Close()

	photo, err := h.service.Upload(c.Request.Context(), file.UploadRequest{
		CompanyID:   rm.CompanyID,
		RoomID:      rm.ID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     f,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(photo))
}

// List returns the photos of a room in the actor's company.
func (h *Handler) List(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actor := auth.GetActor(c)
	if _, err := h.roomService.GetForCompany(c.Request.Context(), req.ID, actor.CompanyID); err != nil {
		response.Error(c, err)
		return
	}

	photos, err := h.service.ListForRoom(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}
	c.JSON(http.StatusOK, items)
}

// Download streams the photo content, or its thumbnail with ?thumbnail=true.
func (h *Handler) Download(c *gin.Context) {
	photo, ok := h.photoForActor(c)
	if !ok {
		return
	}

	thumbnail := c.Query("thumbnail") == "true"
	rc, err := h.service.Open(c.Request.Context(), photo, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	contentType := photo.ContentType
	if thumbnail {
		contentType = "image/jpeg"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, rc)
}

func (h *Handler) Delete(c *gin.Context) {
	photo, ok := h.photoForActor(c)
	if !ok {
		return
	}

	actor := auth.GetActor(c)
	if !auth.CanManage(actor, actor.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), photo.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// photoForActor loads the photo and enforces the tenant boundary. Writes the
// error response itself when the lookup fails.
func (h *Handler) photoForActor(c *gin.Context) (*file.RoomPhoto, bool) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return nil, false
	}

	photo, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if photo.CompanyID != auth.GetActor(c).CompanyID {
		response.Error(c, file.ErrNotFound)
		return nil, false
	}
	return photo, true
}
