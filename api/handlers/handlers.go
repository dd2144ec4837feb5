package handlers

import (
	"context"

	"copydesk/models"
	"copydesk/services"
)

// Service ports consumed by the handlers. The concrete implementations
// live in the services package; tests substitute fakes.

type ChatService interface {
	Ask(ctx context.Context, in services.ChatInput) (*services.ChatResult, error)
}

type SessionService interface {
	ResolveOrCreate(ctx context.Context, userID string) (*models.Session, error)
	CreateExplicit(ctx context.Context, userID string) (*models.Session, error)
	List(ctx context.Context, userID string) ([]models.Session, error)
}

type UploadService interface {
	Store(ctx context.Context, sessionID, filename string, data []byte, contentType string, autoUse bool) (*models.Upload, error)
}
