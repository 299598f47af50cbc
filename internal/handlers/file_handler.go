package handlers

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const presignExpiry = 15 * time.Minute

// FileHandler serves uploaded photos, either via short-lived presigned URLs
// or by proxying the object stream. The token is accepted in the query string
// so browser <img> tags work without custom headers.
type FileHandler struct {
	store *storage.ObjectStore
}

func NewFileHandler(store *storage.ObjectStore) *FileHandler {
	return &FileHandler{store: store}
}

// Presign returns a temporary download URL for the object.
func (h *FileHandler) Presign(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Error("File storage is not configured"))
	}
	objectName := h.objectName(c)
	if objectName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Missing file name"))
	}

	presigned, err := h.store.PresignedURL(c.Context(), objectName, presignExpiry)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to generate file URL"))
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"url": presigned}})
}

// Serve proxies the object through the backend as an alternative to
// presigned URLs.
func (h *FileHandler) Serve(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Error("File storage is not configured"))
	}
	objectName := h.objectName(c)
	if objectName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Missing file name"))
	}

	stream, err := h.store.Get(c.Context(), objectName)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Error("File not found"))
	}

	c.Set(fiber.HeaderContentType, contentTypeFor(objectName))
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	return c.SendStream(stream)
}

// objectName decodes the filename param and strips any URL/bucket prefix.
func (h *FileHandler) objectName(c *fiber.Ctx) string {
	raw := c.Params("filename")
	if decoded, err := url.QueryUnescape(raw); err == nil {
		raw = decoded
	}
	return h.store.NormalizeObjectName(raw)
}

func contentTypeFor(objectName string) string {
	switch strings.ToLower(filepath.Ext(objectName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
