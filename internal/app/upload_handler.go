package app

import (
	"net/http"

	"socialbook/internal/util"

	"github.com/gin-gonic/gin"
)

// UploadHandler pushes images through the Cloudinary pipeline and hands
// back the delivery URL clients store in profile/cover/post image fields.
type UploadHandler struct {
	cloudinary *util.CloudinaryClient
}

func NewUploadHandler(cloudinary *util.CloudinaryClient) *UploadHandler {
	return &UploadHandler{cloudinary: cloudinary}
}

// UploadImage accepts a multipart "image" file
// POST /api/v1/upload
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.cloudinary == nil {
		util.ErrorResponse(c, http.StatusServiceUnavailable, "Image uploads are not configured", nil)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		util.BadRequest(c, "An image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := util.ReadFileFromReader(file)
	if err != nil {
		util.BadRequest(c, "Failed to read uploaded file")
		return
	}

	url, err := h.cloudinary.ProcessFileFromMemory(data, fileHeader.Filename)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, "Failed to upload image", nil)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Image uploaded successfully", gin.H{"url": url})
}
