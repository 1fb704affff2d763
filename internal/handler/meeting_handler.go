package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"meeting_tracker/internal/logging"
	"meeting_tracker/internal/middleware"
	"meeting_tracker/internal/model"
	"meeting_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// MeetingHandler handles meeting related requests
type MeetingHandler struct {
	service service.MeetingService
	logger  *slog.Logger
}

// NewMeetingHandler creates a new MeetingHandler
func NewMeetingHandler(s service.MeetingService, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{service: s, logger: logger}
}

func authUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.AuthUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
	}
	return user, ok
}

func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	var req model.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	meeting, err := h.service.CreateMeeting(c.Request.Context(), user, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logging.WithContext(c.Request.Context(), h.logger).Error("error creating meeting", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meeting"})
		return
	}
	c.JSON(http.StatusCreated, meeting)
}

func (h *MeetingHandler) GetMyMeetings(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	meetings, err := h.service.ListMeetings(c.Request.Context(), user.ID)
	if err != nil {
		logging.WithContext(c.Request.Context(), h.logger).Error("error getting user meetings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve meetings"})
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (h *MeetingHandler) ExportMeetingsCSV(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		return
	}

	csvBuffer, err := h.service.ExportMeetingsCSV(c.Request.Context(), user)
	if err != nil {
		logging.WithContext(c.Request.Context(), h.logger).Error("error exporting meetings to CSV", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export meetings to CSV"})
		return
	}

	fileName := fmt.Sprintf("meetings_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv", csvBuffer.Bytes())
}

// RegisterMeetingRoutes registers meeting routes
func (h *MeetingHandler) RegisterMeetingRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	meetingRoutes := rg.Group("/meetings")
	meetingRoutes.Use(authMW)
	{
		meetingRoutes.POST("", h.CreateMeeting)
		meetingRoutes.GET("", h.GetMyMeetings)
		meetingRoutes.GET("/export/csv", h.ExportMeetingsCSV)
	}
}
