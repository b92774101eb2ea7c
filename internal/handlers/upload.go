package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) (*UploadHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &UploadHandler{dir: dir}, nil
}

// Upload сохраняет файл под случайным именем и возвращает его клиенту,
// клиент потом ссылается на имя в постах и историях
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)

	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"filename": filename})
}
