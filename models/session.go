package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session represents one bounded conversation between a user and the
// assistant. Sessions are superseded, never deleted: when a new session
// replaces the active one, end_time is set and is_active dropped.
// Collection: sessions
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	StartTime time.Time          `bson:"start_time" json:"start_time"`
	EndTime   *time.Time         `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Title     string             `bson:"title" json:"title"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
