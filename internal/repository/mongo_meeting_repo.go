package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meeting_tracker/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const MeetingsCollection = "meetings"

// meetingDocument keeps the field names of existing meeting documents
type meetingDocument struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	UserID                string             `bson:"userid"`
	CustomerName          string             `bson:"customerName"`
	Photo                 string             `bson:"photo"`
	MeetingStartDate      string             `bson:"meetingStartDate"`
	MeetingStartTimestamp string             `bson:"meetingStartTimestamp"`
	Location              string             `bson:"location"`
	Address               string             `bson:"address"`
	Source                string             `bson:"source"`
	PhoneNumber           string             `bson:"phoneNumber"`
	LoanExpected          string             `bson:"loanExpected"`
	Product               string             `bson:"product"`
	Status                string             `bson:"status"`
	Remark2               string             `bson:"remark2"`
	CreatedAt             time.Time          `bson:"created_at,omitempty"`
}

func newMeetingDocument(m *model.Meeting) meetingDocument {
	return meetingDocument{
		UserID:                m.UserID,
		CustomerName:          m.CustomerName,
		Photo:                 m.Photo,
		MeetingStartDate:      m.MeetingStartDate,
		MeetingStartTimestamp: m.MeetingStartTimestamp,
		Location:              m.Location,
		Address:               m.Address,
		Source:                m.Source,
		PhoneNumber:           m.PhoneNumber,
		LoanExpected:          m.LoanExpected,
		Product:               m.Product,
		Status:                m.Status,
		Remark2:               m.Remark2,
		CreatedAt:             m.CreatedAt,
	}
}

func (d *meetingDocument) toModel() model.Meeting {
	return model.Meeting{
		ID:                    d.ID.Hex(),
		UserID:                d.UserID,
		CustomerName:          d.CustomerName,
		Photo:                 d.Photo,
		MeetingStartDate:      d.MeetingStartDate,
		MeetingStartTimestamp: d.MeetingStartTimestamp,
		Location:              d.Location,
		Address:               d.Address,
		Source:                d.Source,
		PhoneNumber:           d.PhoneNumber,
		LoanExpected:          d.LoanExpected,
		Product:               d.Product,
		Status:                d.Status,
		Remark2:               d.Remark2,
		CreatedAt:             d.CreatedAt,
	}
}

type mongoMeetingRepository struct {
	coll *mongo.Collection
}

// NewMongoMeetingRepository creates a MongoDB-backed MeetingRepository
func NewMongoMeetingRepository(db *mongo.Database) MeetingRepository {
	return &mongoMeetingRepository{coll: db.Collection(MeetingsCollection)}
}

// Create inserts a new meeting and assigns its id
func (r *mongoMeetingRepository) Create(ctx context.Context, m *model.Meeting) error {
	doc := newMeetingDocument(m)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	m.ID = doc.ID.Hex()
	return nil
}

// FindByID retrieves a meeting by its id. A missing meeting is (nil, nil).
func (r *mongoMeetingRepository) FindByID(ctx context.Context, id string) (*model.Meeting, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting id %q: %w", id, err)
	}

	var doc meetingDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find meeting by ID: %w", err)
	}
	m := doc.toModel()
	return &m, nil
}

// FindByUser retrieves all meetings of a user in natural order
func (r *mongoMeetingRepository) FindByUser(ctx context.Context, userID string) ([]model.Meeting, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings by user: %w", err)
	}
	defer cursor.Close(ctx)

	meetings := []model.Meeting{}
	for cursor.Next(ctx) {
		var doc meetingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode meeting document: %w", err)
		}
		meetings = append(meetings, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting documents: %w", err)
	}
	return meetings, nil
}
