package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"copydesk/models"
)

type UploadRepository struct {
	col *mongo.Collection
}

func NewUploadRepository(db *mongo.Database) *UploadRepository {
	return &UploadRepository{col: db.Collection("uploads")}
}

// Insert stores one upload. No de-duplication: every call writes a row.
func (r *UploadRepository) Insert(ctx context.Context, u *models.Upload) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, u)
	return err
}

// FindLatestBySession returns the most recently stored upload for a
// session, or nil when the session has none.
func (r *UploadRepository) FindLatestBySession(ctx context.Context, sessionID string) (*models.Upload, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var u models.Upload
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ClearAutoUse drops the auto_use flag of a single upload after it has
// been folded into a prompt, so it fires for one prompt only. Keyed by id
// so that other uploads sharing a filename keep their flag.
func (r *UploadRepository) ClearAutoUse(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"auto_use": false}},
	)
	return err
}
