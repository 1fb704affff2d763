package repository

import (
	"context"
	"errors"
	"fmt"

	"meeting_tracker/internal/model"

	"github.com/jackc/pgx/v5"
)

const meetingColumns = `id, user_id, customer_name, photo, meeting_start_date, meeting_start_timestamp,
       location, address, source, phone_number, loan_expected, product, status, remark2, created_at`

type meetingRepository struct {
	db DBTX
}

// NewMeetingRepository creates a Postgres-backed MeetingRepository
func NewMeetingRepository(db DBTX) MeetingRepository {
	return &meetingRepository{db: db}
}

// Create inserts a new meeting and assigns its id
func (r *meetingRepository) Create(ctx context.Context, m *model.Meeting) error {
	m.ID = NewID()
	sql := `INSERT INTO meetings (` + meetingColumns + `)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, sql,
		m.ID, m.UserID, m.CustomerName, m.Photo, m.MeetingStartDate, m.MeetingStartTimestamp,
		m.Location, m.Address, m.Source, m.PhoneNumber, m.LoanExpected, m.Product, m.Status, m.Remark2, m.CreatedAt,
	)
	if err != nil {
		m.ID = ""
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// FindByID retrieves a meeting by its id. A missing meeting is (nil, nil).
func (r *meetingRepository) FindByID(ctx context.Context, id string) (*model.Meeting, error) {
	sql := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`
	m, err := scanMeeting(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find meeting by ID: %w", err)
	}
	return m, nil
}

// FindByUser retrieves all meetings of a user in insertion order
func (r *meetingRepository) FindByUser(ctx context.Context, userID string) ([]model.Meeting, error) {
	sql := `SELECT ` + meetingColumns + ` FROM meetings WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings by user: %w", err)
	}
	defer rows.Close()

	meetings := []model.Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting row: %w", err)
		}
		meetings = append(meetings, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}
	return meetings, nil
}

func scanMeeting(row pgx.Row) (*model.Meeting, error) {
	m := &model.Meeting{}
	err := row.Scan(
		&m.ID, &m.UserID, &m.CustomerName, &m.Photo, &m.MeetingStartDate, &m.MeetingStartTimestamp,
		&m.Location, &m.Address, &m.Source, &m.PhoneNumber, &m.LoanExpected, &m.Product, &m.Status, &m.Remark2, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
