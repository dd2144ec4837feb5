package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"copydesk/models"
)

// MaxUploadBytes is the hard payload cap, enforced before any store write.
const MaxUploadBytes = 20 << 20 // 20 MiB

var ErrUploadTooLarge = errors.New("upload exceeds the 20 MiB limit")

// UploadService owns session-scoped reference files.
type UploadService struct {
	uploads UploadRepository
}

func NewUploadService(uploads UploadRepository) *UploadService {
	return &UploadService{uploads: uploads}
}

// Store persists one upload. Oversized payloads are rejected before the
// repository is touched.
func (s *UploadService) Store(ctx context.Context, sessionID, filename string, data []byte, contentType string, autoUse bool) (*models.Upload, error) {
	if len(data) > MaxUploadBytes {
		return nil, ErrUploadTooLarge
	}
	u := &models.Upload{
		SessionID:   sessionID,
		Filename:    filename,
		FileData:    data,
		ContentType: contentType,
		AutoUse:     autoUse,
	}
	if err := s.uploads.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Latest returns the most recent upload for a session, nil when none exists.
func (s *UploadService) Latest(ctx context.Context, sessionID string) (*models.Upload, error) {
	return s.uploads.FindLatestBySession(ctx, sessionID)
}

// ConsumeAutoUse clears the one-shot auto-use flag of a single upload
// after it has been applied to a prompt.
func (s *UploadService) ConsumeAutoUse(ctx context.Context, id primitive.ObjectID) error {
	return s.uploads.ClearAutoUse(ctx, id)
}
