package handler

import (
	"io"
	"mime/multipart"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PhotoHandler handles item photo HTTP requests
type PhotoHandler struct {
	photoService *service.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// UploadPhotos accepts a multipart batch of photos for an item. Files over
// the remaining slot count are dropped, invalid files are reported as
// skipped without failing the batch.
// @Summary Upload item photos
// @Tags photos
// @Security BearerAuth
// @Accept multipart/form-data
// @Param photos formData file true "Photo files"
// @Success 200 {object} response.APIResponse
// @Router /items/{itemId}/photos [post]
func (h *PhotoHandler) UploadPhotos(c *gin.Context) {
	itemID := parseUUIDParam(c, "itemId")
	if itemID == uuid.Nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		response.BadRequest(c, "At least one photo file is required")
		return
	}

	uploads := make([]service.PhotoUpload, 0, len(files))
	for _, fh := range files {
		data, err := readMultipartFile(fh)
		if err != nil {
			response.BadRequest(c, "Failed to read uploaded file "+fh.Filename)
			return
		}
		uploads = append(uploads, service.PhotoUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	result, err := h.photoService.AddPhotos(c.Request.Context(), itemID, uploads, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Photos processed", gin.H{"result": result})
}

// ListPhotos lists the stored photos of an item
// @Summary List item photos
// @Tags photos
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /items/{itemId}/photos [get]
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	itemID := parseUUIDParam(c, "itemId")
	if itemID == uuid.Nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	photos, err := h.photoService.ListPhotos(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Photos retrieved successfully", gin.H{"photos": photos})
}

// DownloadPhoto streams a stored photo
// @Summary Download item photo
// @Tags photos
// @Security BearerAuth
// @Produce image/jpeg
// @Success 200 {file} binary
// @Router /items/{itemId}/photos/{photoId} [get]
func (h *PhotoHandler) DownloadPhoto(c *gin.Context) {
	itemID := parseUUIDParam(c, "itemId")
	photoID := parseUUIDParam(c, "photoId")
	if itemID == uuid.Nil || photoID == uuid.Nil {
		response.BadRequest(c, "Invalid item or photo ID")
		return
	}

	data, photo, err := h.photoService.ReadPhoto(c.Request.Context(), itemID, photoID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, photo.ContentType, data)
}

// DeletePhoto removes a stored photo
// @Summary Delete item photo
// @Tags photos
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /items/{itemId}/photos/{photoId} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	itemID := parseUUIDParam(c, "itemId")
	photoID := parseUUIDParam(c, "photoId")
	if itemID == uuid.Nil || photoID == uuid.Nil {
		response.BadRequest(c, "Invalid item or photo ID")
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), itemID, photoID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Photo deleted successfully", nil)
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
