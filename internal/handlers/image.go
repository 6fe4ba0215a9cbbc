package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/biloute593/GAMELLE-APP/internal/logger"
	"github.com/biloute593/GAMELLE-APP/internal/s3"
)

// ImageUploader stores an uploaded picture and returns its public URL.
type ImageUploader interface {
	UploadDishImage(ctx context.Context, imgBytes []byte, key, contentType string) (string, error)
}

// ImageHandler handles image upload requests.
type ImageHandler struct {
	Uploader ImageUploader
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(uploader ImageUploader) *ImageHandler {
	return &ImageHandler{Uploader: uploader}
}

// allowedImageTypes maps accepted file extensions to their content type.
var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

const maxImageSize = 10 << 20

// UploadImage handles POST /v1/images/upload. The returned URL is meant for
// the imageUrl field of a new listing.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	// Validate file extension
	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type. Allowed: jpg, png, webp"})
		return
	}

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds maximum size of 10MB"})
		return
	}

	imgBytes, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	if len(imgBytes) > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds maximum size of 10MB"})
		return
	}

	key := s3.DishImageKey(ext)
	imageURL, err := h.Uploader.UploadDishImage(c.Request.Context(), imgBytes, key, contentType)
	if err != nil {
		logger.FromGin(c).Error("failed to upload image to S3", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
