package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mechradii/middleware"
	"mechradii/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageBytes = 10 << 20 // 10MB

// StorageHandler handles image upload endpoints.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadImageHandler handles POST /uploads/images. The resulting URL is
// passed back by the client in later profile or mechanic updates.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the 10MB limit"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only jpg, png, and webp images are accepted"})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), uuid.New().String()+ext)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	url, err := h.StorageSvc.UploadImage(c, tempFilePath, "mechradii/avatars/"+userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetSignedURLHandler handles GET /uploads/signed-url?public_id=&type=. Used
// for hosted resources that are not publicly addressable.
func (h *StorageHandler) GetSignedURLHandler(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	publicID := c.Query("public_id")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "public_id is required"})
		return
	}
	resourceType := c.DefaultQuery("type", "image")

	url, err := h.StorageSvc.GetSecureDownloadURL(c, resourceType, publicID, time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct download URL", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteImageHandler handles DELETE /uploads/images. Owners may remove an
// image they previously uploaded; the public id is scoped to their folder.
func (h *StorageHandler) DeleteImageHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	publicID := c.Query("public_id")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "public_id is required"})
		return
	}
	if !strings.Contains(publicID, "mechradii/avatars/"+userID+"/") {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete another user's image"})
		return
	}

	if err := h.StorageSvc.DeleteFile(c, publicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
