package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	"github.com/noah-isme/nawa-notice-api/pkg/database"
)

type noticeDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AdminID     objectRef          `bson:"adminID"`
	Category    string             `bson:"noticecategory"`
	Audience    string             `bson:"targetaudience"`
	Title       string             `bson:"noticetitle"`
	Description string             `bson:"noticedes"`
	Attachments attachmentList     `bson:"attachments,omitempty"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func (d noticeDocument) toModel(loc *time.Location) models.Notice {
	n := models.Notice{
		ID:          d.ID.Hex(),
		AdminID:     string(d.AdminID),
		Category:    d.Category,
		Audience:    models.Audience(d.Audience),
		Title:       d.Title,
		Description: d.Description,
		Date:        storedDay(d.Date, loc),
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if len(d.Attachments) > 0 {
		n.Attachments = []string(d.Attachments)
	}
	return n
}

// storedDay maps a stored date onto its calendar day. Documents written by the
// previous server hold local midnight of the school zone, which is not UTC
// midnight; those are re-read in loc.
func storedDay(t time.Time, loc *time.Location) time.Time {
	u := t.UTC()
	if u.Equal(models.CalendarDay(u)) {
		return u
	}
	return models.DayIn(t, loc)
}

// NoticeMongoRepository stores notices in the legacy "notices" collection.
type NoticeMongoRepository struct {
	collection *mongo.Collection
	loc        *time.Location
}

// NewNoticeMongoRepository creates the repository on top of db. loc is the
// school timezone legacy dates were written in; nil means UTC.
func NewNoticeMongoRepository(db *mongo.Database, loc *time.Location) *NoticeMongoRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &NoticeMongoRepository{collection: db.Collection(database.NoticesCollection), loc: loc}
}

// List returns notices addressed to any of the filter's audiences sorted by date
// descending. ObjectIds grow with insertion so _id breaks ties in insertion order.
func (r *NoticeMongoRepository) List(ctx context.Context, filter models.NoticeFilter) ([]models.Notice, error) {
	audiences := make([]string, 0, len(filter.Audiences))
	for _, a := range filter.Audiences {
		audiences = append(audiences, string(a))
	}

	query := bson.M{"targetaudience": bson.M{"$in": audiences}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find notices: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var docs []noticeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notices: %w", err)
	}

	notices := make([]models.Notice, 0, len(docs))
	for _, doc := range docs {
		notices = append(notices, doc.toModel(r.loc))
	}
	return notices, nil
}

// GetByID fetches one notice. Malformed ids are reported as not found.
func (r *NoticeMongoRepository) GetByID(ctx context.Context, id string) (*models.Notice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}

	var doc noticeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	n := doc.toModel(r.loc)
	return &n, nil
}

// Create inserts the notice and writes the generated id back.
func (r *NoticeMongoRepository) Create(ctx context.Context, notice *models.Notice) error {
	now := time.Now().UTC()
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = now
	}

	doc := noticeDocument{
		ID:          primitive.NewObjectID(),
		AdminID:     objectRef(notice.AdminID),
		Category:    notice.Category,
		Audience:    string(notice.Audience),
		Title:       notice.Title,
		Description: notice.Description,
		Attachments: attachmentList(notice.Attachments),
		Date:        notice.Date,
		CreatedAt:   notice.CreatedAt,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	notice.ID = doc.ID.Hex()
	return nil
}

// Delete removes the notice and returns what was stored.
func (r *NoticeMongoRepository) Delete(ctx context.Context, id string) (*models.Notice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}

	var doc noticeDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("delete notice: %w", err)
	}
	n := doc.toModel(r.loc)
	return &n, nil
}

// AttachmentInUse reports whether any stored notice still lists the file name.
// The equality match covers both the array and the legacy single-string form.
func (r *NoticeMongoRepository) AttachmentInUse(ctx context.Context, name string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"attachments": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check attachment references: %w", err)
	}
	return count > 0, nil
}

// Ping verifies the deployment is reachable for readiness checks.
func (r *NoticeMongoRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}
