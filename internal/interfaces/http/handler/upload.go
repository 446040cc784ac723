package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/packsource/backend/internal/application/upload"
)

// UploadHandler handles image upload HTTP requests
type UploadHandler struct {
	BaseHandler
	uploadService *upload.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *upload.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Image accepts a multipart image and returns its hosted URL.
// The `type` query parameter selects the avatar or product namespace.
func (h *UploadHandler) Image(c *gin.Context) {
	kind := upload.UploadKind(c.DefaultQuery("type", string(upload.UploadKindProduct)))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	result, err := h.uploadService.StoreImage(c.Request.Context(), kind, fileHeader.Filename, contentType, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers upload routes
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload/image", h.Image)
}
