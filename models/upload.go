package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload stores one reference file uploaded into a session. AutoUse marks
// the file for injection into the next prompt; it is cleared after the
// first prompt that consumes it.
// Collection: uploads
type Upload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"session_id" json:"session_id"`
	Filename    string             `bson:"filename" json:"filename"`
	FileData    []byte             `bson:"file_data" json:"-"`
	ContentType string             `bson:"content_type" json:"content_type"`
	AutoUse     bool               `bson:"auto_use" json:"auto_use"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
