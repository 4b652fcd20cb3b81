package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/decorabur/decora-api/internal/storage"
)

const (
	maxImageSize        = 5 << 20 // per file
	maxImagesPerProduct = 10
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// saveImageFile validates one multipart image, re-encodes it as WebP and
// hands it to the configured store. Returns the URL to persist.
func saveImageFile(c *gin.Context, store storage.Store, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxImageSize {
		return "", fmt.Errorf("file %s exceeds the 5MB limit", fh.Filename)
	}

	contentType := fh.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("file %s: only jpeg, png and webp images are allowed", fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxImageSize {
		return "", fmt.Errorf("file %s exceeds the 5MB limit", fh.Filename)
	}

	converted, finalType, err := storage.ConvertToWebP(data, contentType)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ".webp"
	return store.Save(c.Request.Context(), name, finalType, bytes.NewReader(converted), int64(len(converted)))
}
