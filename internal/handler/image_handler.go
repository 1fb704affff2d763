package handler

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"meeting_tracker/internal/logging"
	"meeting_tracker/internal/model"
	"meeting_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const brokenImagePage = "<h2>Could not display image.</h2>"

var imageViewer = template.Must(template.New("image").Parse(
	`<html><body style="margin:0;padding:0;text-align:center;background:#f8f8f8;">` +
		`<img src="{{.}}" style="max-width:90vw;max-height:90vh;border-radius:12px;box-shadow:0 2px 8px #0002;" />` +
		`</body></html>`))

// ImageHandler serves meeting photos behind the public links written to the spreadsheet
type ImageHandler struct {
	service service.MeetingService
	logger  *slog.Logger
}

func NewImageHandler(s service.MeetingService, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{service: s, logger: logger}
}

func (h *ImageHandler) GetImage(c *gin.Context) {
	img, err := h.service.GetImage(c.Request.Context(), c.Param("meeting_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMeetingID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meeting ID format"})
		case errors.Is(err, service.ErrImageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		default:
			logging.WithContext(c.Request.Context(), h.logger).Error("error loading meeting image", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load image"})
		}
		return
	}

	switch img.Kind {
	case model.ImageKindURL:
		c.Redirect(http.StatusTemporaryRedirect, img.Source)
	case model.ImageKindInline:
		var page bytes.Buffer
		// Source is a data:image URI produced by the meeting service.
		if err := imageViewer.Execute(&page, template.URL(img.Source)); err != nil {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(brokenImagePage))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
	default:
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(brokenImagePage))
	}
}

func (h *ImageHandler) RegisterImageRoutes(rg *gin.RouterGroup) {
	rg.GET("/image/:meeting_id", h.GetImage)
}
