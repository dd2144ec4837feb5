package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExchangeDoc is one (user, assistant) message pair. Immutable once stored.
type ExchangeDoc struct {
	User string `bson:"user" json:"user"`
	AI   string `bson:"ai" json:"ai"`
}

// Message attaches one exchange to a session, in insertion order.
// Collection: messages
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Message   ExchangeDoc        `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
