package service

import (
	"context"
	"errors"
	"sync"

	"meeting_tracker/internal/model"
	"meeting_tracker/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

type fakeUserRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*model.User
	findErr   error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.ID = repository.NewID()
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

type fakeMeetingRepo struct {
	mu        sync.Mutex
	meetings  []model.Meeting
	createErr error
	findErr   error
}

func (r *fakeMeetingRepo) Create(_ context.Context, m *model.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	m.ID = repository.NewID()
	r.meetings = append(r.meetings, *m)
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id string) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for i := range r.meetings {
		if r.meetings[i].ID == id {
			m := r.meetings[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeMeetingRepo) FindByUser(_ context.Context, userID string) ([]model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []model.Meeting
	for _, m := range r.meetings {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type recordingMirror struct {
	mu      sync.Mutex
	rows    [][]string
	ctxErrs []error
	err     error
}

func (m *recordingMirror) AppendRow(ctx context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, row)
	return nil
}
