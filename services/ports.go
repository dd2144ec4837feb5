package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"copydesk/agent"
	"copydesk/conversation"
	"copydesk/models"
)

// Repository ports. The mongo-backed implementations live in the
// repositories package; tests substitute in-memory fakes.

type UserRepository interface {
	UpsertByUserID(ctx context.Context, userID string) error
}

type SessionRepository interface {
	Insert(ctx context.Context, s *models.Session) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.Session, error)
	FindActiveByUser(ctx context.Context, userID string) (*models.Session, error)
	Deactivate(ctx context.Context, sessionID string) error
	SetTitleIfEmpty(ctx context.Context, sessionID, title string) error
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
}

type MessageRepository interface {
	Insert(ctx context.Context, m *models.Message) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Message, error)
}

type UploadRepository interface {
	Insert(ctx context.Context, u *models.Upload) error
	FindLatestBySession(ctx context.Context, sessionID string) (*models.Upload, error)
	ClearAutoUse(ctx context.Context, id primitive.ObjectID) error
}

type AILogRepository interface {
	Insert(ctx context.Context, log models.AILog) (*mongo.InsertOneResult, error)
}

// Asker is the routed completion model behind the chat flow.
type Asker interface {
	Ask(ctx context.Context, history []conversation.Exchange, input string) (agent.Reply, error)
}
