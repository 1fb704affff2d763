package handler

import (
	"bytes"
	"context"

	"meeting_tracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	args := m.Called(ctx, req)
	token, _ := args.Get(0).(*model.TokenResponse)
	return token, args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type mockMeetingService struct {
	mock.Mock
}

func (m *mockMeetingService) CreateMeeting(ctx context.Context, owner *model.User, req model.CreateMeetingRequest) (*model.Meeting, error) {
	args := m.Called(ctx, owner, req)
	meeting, _ := args.Get(0).(*model.Meeting)
	return meeting, args.Error(1)
}

func (m *mockMeetingService) ListMeetings(ctx context.Context, ownerID string) ([]model.Meeting, error) {
	args := m.Called(ctx, ownerID)
	meetings, _ := args.Get(0).([]model.Meeting)
	return meetings, args.Error(1)
}

func (m *mockMeetingService) GetImage(ctx context.Context, meetingID string) (*model.MeetingImage, error) {
	args := m.Called(ctx, meetingID)
	img, _ := args.Get(0).(*model.MeetingImage)
	return img, args.Error(1)
}

func (m *mockMeetingService) ExportMeetingsCSV(ctx context.Context, owner *model.User) (*bytes.Buffer, error) {
	args := m.Called(ctx, owner)
	buf, _ := args.Get(0).(*bytes.Buffer)
	return buf, args.Error(1)
}
