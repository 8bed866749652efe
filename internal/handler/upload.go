package handler

import (
	"fmt"
	"io"

	"delit-api/internal/apperror"
	"delit-api/internal/storage"

	"github.com/gin-gonic/gin"
)

// readFile loads the multipart file field into memory, rejecting files
// larger than maxBytes.
func readFile(c *gin.Context, field string, maxBytes int64) (storage.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return storage.File{}, apperror.Validation(field + " is required")
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return storage.File{}, apperror.TooLarge(fmt.Sprintf("file size exceeds the limit %d MB", maxBytes/(1024*1024)))
	}

	f, err := header.Open()
	if err != nil {
		return storage.File{}, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return storage.File{}, fmt.Errorf("read %s: %w", field, err)
	}
	return storage.File{Name: header.Filename, Content: content}, nil
}
