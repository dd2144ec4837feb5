package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"copydesk/models"
)

type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection("sessions")}
}

// Insert stores a new session document.
func (r *SessionRepository) Insert(ctx context.Context, s *models.Session) error {
	now := time.Now()
	if s.StartTime.IsZero() {
		s.StartTime = now
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, s)
	return err
}

// FindBySessionID returns a session by its token.
func (r *SessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	var s models.Session
	if err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindActiveByUser returns the newest active session for a user, or nil.
func (r *SessionRepository) FindActiveByUser(ctx context.Context, userID string) (*models.Session, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "start_time", Value: -1}})
	var s models.Session
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "is_active": true}, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Deactivate supersedes a session: is_active is dropped and end_time set.
// The document itself is kept for history.
func (r *SessionRepository) Deactivate(ctx context.Context, sessionID string) error {
	now := time.Now()
	_, err := r.col.UpdateOne(ctx, bson.M{"session_id": sessionID}, bson.M{
		"$set": bson.M{"is_active": false, "end_time": now, "updated_at": now},
	})
	return err
}

// SetTitleIfEmpty stores the derived title on the first exchange only.
// The title=="" filter makes the write a no-op for every later exchange.
func (r *SessionRepository) SetTitleIfEmpty(ctx context.Context, sessionID, title string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "title": ""},
		bson.M{"$set": bson.M{"title": title, "updated_at": time.Now()}},
	)
	return err
}

// ListByUser returns all sessions for a user, most recent first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
