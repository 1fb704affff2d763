package repository

import (
	"context"
	"errors"

	"meeting_tracker/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateEmail is returned when the store rejects a second user with the same email
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// MeetingRepository defines operations for meeting data
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	FindByID(ctx context.Context, id string) (*model.Meeting, error)
	FindByUser(ctx context.Context, userID string) ([]model.Meeting, error)
}

// DBTX is the subset of pgxpool.Pool used by the Postgres repositories
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewID returns a fresh store identifier. Both backends use ObjectID hex strings.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed store identifier
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
