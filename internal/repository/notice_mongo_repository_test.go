package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/nawa-notice-api/internal/models"
)

const noticesNS = "nawa_db.notices"

func TestNoticeMongoRepositoryList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes mixed legacy encodings", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		adminOID := primitive.NewObjectID()
		firstID := primitive.NewObjectID()
		secondID := primitive.NewObjectID()
		day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

		first := mtest.CreateCursorResponse(1, noticesNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: firstID},
			{Key: "adminID", Value: adminOID},
			{Key: "noticecategory", Value: "Important"},
			{Key: "targetaudience", Value: "All"},
			{Key: "noticetitle", Value: "Exam week"},
			{Key: "noticedes", Value: "Bring pencils"},
			{Key: "attachments", Value: "timetable.pdf"},
			{Key: "date", Value: day},
		})
		second := mtest.CreateCursorResponse(0, noticesNS, mtest.NextBatch, bson.D{
			{Key: "_id", Value: secondID},
			{Key: "adminID", Value: "legacy-admin"},
			{Key: "noticecategory", Value: "General"},
			{Key: "targetaudience", Value: "Students"},
			{Key: "noticetitle", Value: "Sports day"},
			{Key: "noticedes", Value: "Wear white"},
			{Key: "attachments", Value: bson.A{"a.pdf", "b.pdf"}},
			{Key: "date", Value: day.AddDate(0, 0, -1)},
		})
		mt.AddMockResponses(first, second)

		notices, err := repo.List(context.Background(), models.NoticeFilter{Audiences: models.VisibleAudiences(models.RoleStudent)})
		require.NoError(mt, err)
		require.Len(mt, notices, 2)

		assert.Equal(mt, firstID.Hex(), notices[0].ID)
		assert.Equal(mt, adminOID.Hex(), notices[0].AdminID)
		assert.Equal(mt, []string{"timetable.pdf"}, notices[0].Attachments)
		assert.True(mt, notices[0].IsImportant())
		assert.Equal(mt, day, notices[0].Date)

		assert.Equal(mt, "legacy-admin", notices[1].AdminID)
		assert.Equal(mt, models.AudienceStudents, notices[1].Audience)
		assert.Equal(mt, []string{"a.pdf", "b.pdf"}, notices[1].Attachments)
	})

	mt.Run("surfaces server errors", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Name:    "InterruptedAtShutdown",
			Message: "interrupted at shutdown",
		}))

		_, err := repo.List(context.Background(), models.NoticeFilter{Audiences: []models.Audience{models.AudienceAll}})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find notices")
	})
}

func TestNoticeMongoRepositoryNormalizesLegacyLocalMidnight(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("local midnight ahead of UTC", func(mt *mtest.T) {
		kathmandu := time.FixedZone("UTC+5:45", 5*60*60+45*60)
		repo := NewNoticeMongoRepository(mt.DB, kathmandu)
		legacy := time.Date(2024, 3, 15, 0, 0, 0, 0, kathmandu)
		current := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

		first := mtest.CreateCursorResponse(1, noticesNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "targetaudience", Value: "All"},
			{Key: "date", Value: legacy},
		})
		second := mtest.CreateCursorResponse(0, noticesNS, mtest.NextBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "targetaudience", Value: "All"},
			{Key: "date", Value: current},
		})
		mt.AddMockResponses(first, second)

		notices, err := repo.List(context.Background(), models.NoticeFilter{Audiences: []models.Audience{models.AudienceAll}})
		require.NoError(mt, err)
		require.Len(mt, notices, 2)
		assert.Equal(mt, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), notices[0].Date)
		assert.Equal(mt, current, notices[1].Date)
	})

	mt.Run("local midnight behind UTC", func(mt *mtest.T) {
		eastern := time.FixedZone("UTC-5", -5*60*60)
		repo := NewNoticeMongoRepository(mt.DB, eastern)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, noticesNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "targetaudience", Value: "All"},
			{Key: "date", Value: time.Date(2024, 3, 15, 0, 0, 0, 0, eastern)},
		}))

		notices, err := repo.List(context.Background(), models.NoticeFilter{Audiences: []models.Audience{models.AudienceAll}})
		require.NoError(mt, err)
		require.Len(mt, notices, 1)
		assert.Equal(mt, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), notices[0].Date)
	})
}

func TestNoticeMongoRepositoryAttachmentInUse(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("referenced", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, noticesNS, mtest.FirstBatch, bson.D{
			{Key: "n", Value: int32(1)},
		}))

		inUse, err := repo.AttachmentInUse(context.Background(), "timetable.pdf")
		require.NoError(mt, err)
		assert.True(mt, inUse)
	})

	mt.Run("unreferenced", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, noticesNS, mtest.FirstBatch))

		inUse, err := repo.AttachmentInUse(context.Background(), "timetable.pdf")
		require.NoError(mt, err)
		assert.False(mt, inUse)
	})
}

func TestNoticeMongoRepositoryGetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, noticesNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "targetaudience", Value: "Teachers & Staffs"},
			{Key: "noticetitle", Value: "Staff meeting"},
			{Key: "date", Value: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		}))

		notice, err := repo.GetByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), notice.ID)
		assert.Equal(mt, models.AudienceTeachers, notice.Audience)
		assert.Equal(mt, "Staff meeting", notice.Title)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, noticesNS, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, models.ErrRecordNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)

		_, err := repo.GetByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, models.ErrRecordNotFound)
	})
}

func TestNoticeMongoRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("writes id back", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		notice := &models.Notice{
			AdminID:     primitive.NewObjectID().Hex(),
			Category:    models.CategoryGeneral,
			Audience:    models.AudienceAll,
			Title:       "Holiday",
			Description: "School closed",
			Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(mt, repo.Create(context.Background(), notice))
		_, err := primitive.ObjectIDFromHex(notice.ID)
		assert.NoError(mt, err)
		assert.False(mt, notice.CreatedAt.IsZero())
	})
}

func TestNoticeMongoRepositoryDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns deleted document", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "adminID", Value: primitive.NewObjectID()},
			{Key: "noticecategory", Value: "General"},
			{Key: "targetaudience", Value: "All"},
			{Key: "noticetitle", Value: "t"},
			{Key: "noticedes", Value: "d"},
			{Key: "attachments", Value: "flyer.png"},
			{Key: "date", Value: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		}}))

		deleted, err := repo.Delete(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), deleted.ID)
		assert.Equal(mt, []string{"flyer.png"}, deleted.Attachments)
	})

	mt.Run("missing document", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, models.ErrRecordNotFound)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		repo := NewNoticeMongoRepository(mt.DB, time.UTC)

		_, err := repo.Delete(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, models.ErrRecordNotFound)
	})
}

func TestAdminMongoRepositoryFindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewAdminMongoRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "nawa_db.admins", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Principal Rao"},
		}))

		admin, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Principal Rao", admin.Name)
		assert.Equal(mt, id.Hex(), admin.ID)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewAdminMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "nawa_db.admins", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, models.ErrRecordNotFound)
	})
}
