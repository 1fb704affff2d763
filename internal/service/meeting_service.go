package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"meeting_tracker/internal/logging"
	"meeting_tracker/internal/model"
	"meeting_tracker/internal/repository"
)

// RowAppender is the spreadsheet sink meetings are mirrored to
type RowAppender interface {
	AppendRow(ctx context.Context, row []string) error
}

// MeetingService defines operations for meetings
type MeetingService interface {
	CreateMeeting(ctx context.Context, owner *model.User, req model.CreateMeetingRequest) (*model.Meeting, error)
	ListMeetings(ctx context.Context, ownerID string) ([]model.Meeting, error)
	GetImage(ctx context.Context, meetingID string) (*model.MeetingImage, error)
	ExportMeetingsCSV(ctx context.Context, owner *model.User) (*bytes.Buffer, error)
}

type meetingService struct {
	repo          repository.MeetingRepository
	mirror        RowAppender // nil means store-only mode
	publicBaseURL string
	logger        *slog.Logger
}

// NewMeetingService creates a new MeetingService. mirror may be nil.
func NewMeetingService(repo repository.MeetingRepository, mirror RowAppender, publicBaseURL string, logger *slog.Logger) MeetingService {
	return &meetingService{
		repo:          repo,
		mirror:        mirror,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

func (s *meetingService) CreateMeeting(ctx context.Context, owner *model.User, req model.CreateMeetingRequest) (*model.Meeting, error) {
	if strings.TrimSpace(req.CustomerName) == "" || req.MeetingStartDate == "" ||
		req.MeetingStartTimestamp == "" || strings.TrimSpace(req.Location) == "" {
		return nil, ErrValidation
	}

	meeting := &model.Meeting{
		UserID:                owner.ID,
		CustomerName:          req.CustomerName,
		Photo:                 req.Photo,
		MeetingStartDate:      req.MeetingStartDate,
		MeetingStartTimestamp: req.MeetingStartTimestamp,
		Location:              req.Location,
		Address:               req.Address,
		Source:                req.Source,
		PhoneNumber:           req.PhoneNumber,
		LoanExpected:          req.LoanExpected,
		Product:               req.Product,
		Status:                req.Status,
		Remark2:               req.Remark2,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("%w: failed to create meeting in repo: %w", ErrPersistence, err)
	}

	s.mirrorMeeting(ctx, owner, meeting)
	return meeting, nil
}

// mirrorMeeting is best effort: the stored meeting is authoritative and a
// failed append is logged and dropped.
func (s *meetingService) mirrorMeeting(ctx context.Context, owner *model.User, meeting *model.Meeting) {
	log := logging.WithContext(ctx, s.logger).With("meeting_id", meeting.ID)
	if s.mirror == nil {
		log.Info("Google Sheets integration not available, meeting saved to store only")
		return
	}

	// The meeting is already stored; a client disconnect must not cancel the append.
	row := meeting.ReportRow(owner.Name, s.imageURL(meeting))
	if err := s.mirror.AppendRow(context.WithoutCancel(ctx), row); err != nil {
		log.Error("failed to append row to Google Sheet", "error", err)
		return
	}
	log.Debug("row appended to Google Sheet")
}

// imageURL is empty for meetings without a photo; the raw payload never leaves the store.
func (s *meetingService) imageURL(meeting *model.Meeting) string {
	if meeting.Photo == "" {
		return ""
	}
	return s.publicBaseURL + "/image/" + meeting.ID
}

func (s *meetingService) ListMeetings(ctx context.Context, ownerID string) ([]model.Meeting, error) {
	meetings, err := s.repo.FindByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user meetings from repo: %w", ErrPersistence, err)
	}
	if meetings == nil {
		meetings = []model.Meeting{}
	}
	return meetings, nil
}

func (s *meetingService) GetImage(ctx context.Context, meetingID string) (*model.MeetingImage, error) {
	if !repository.IsValidID(meetingID) {
		return nil, ErrInvalidMeetingID
	}

	meeting, err := s.repo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find meeting: %w", ErrPersistence, err)
	}
	if meeting == nil || meeting.Photo == "" {
		return nil, ErrImageNotFound
	}
	return classifyPhoto(meeting.Photo), nil
}

func classifyPhoto(photo string) *model.MeetingImage {
	switch {
	case strings.HasPrefix(photo, "http://"), strings.HasPrefix(photo, "https://"):
		return &model.MeetingImage{Kind: model.ImageKindURL, Source: photo}
	case strings.HasPrefix(photo, "data:image/"):
		return &model.MeetingImage{Kind: model.ImageKindInline, Source: photo}
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(photo))
	if err != nil {
		return &model.MeetingImage{Kind: model.ImageKindBroken}
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return &model.MeetingImage{Kind: model.ImageKindBroken}
	}
	return &model.MeetingImage{
		Kind:   model.ImageKindInline,
		Source: "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
}

func (s *meetingService) ExportMeetingsCSV(ctx context.Context, owner *model.User) (*bytes.Buffer, error) {
	meetings, err := s.ListMeetings(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	if err := writer.Write(model.ReportColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range meetings {
		m := &meetings[i]
		if err := writer.Write(m.ReportRow(owner.Name, s.imageURL(m))); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return buffer, nil
}
