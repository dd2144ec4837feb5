package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"copydesk/agent"
	"copydesk/conversation"
	"copydesk/logger"
	"copydesk/models"
)

var ErrEmptyInput = errors.New("input cannot be empty")

// referencePhrase triggers upload inclusion when it appears anywhere in the
// user text, case-insensitively.
const referencePhrase = "reference file"

// imageStoredMarker replaces multi-megabyte base64 payloads in the durable
// message log and conversation cache.
const imageStoredMarker = "[poster image generated]"

// ChatInput is one submitted user message. UserID and SessionID are
// optional; missing identities are minted and echoed back.
type ChatInput struct {
	UserID    string
	SessionID string
	Input     string
}

// ChatResult is what the policy produced. For images, Message holds the
// inline PNG data URI.
type ChatResult struct {
	Type      agent.Kind
	Message   string
	SessionID string
	UserID    string
}

// ChatService drives one request through the whole pipeline: session
// resolution, history rebuild, upload splicing, the routed model call and
// exchange persistence.
type ChatService struct {
	asker    Asker
	sessions *SessionService
	uploads  *UploadService
	messages MessageRepository
	aiLogs   AILogRepository
	cache    *conversation.Store
	window   int
	model    string
}

func NewChatService(
	asker Asker,
	sessions *SessionService,
	uploads *UploadService,
	messages MessageRepository,
	aiLogs AILogRepository,
	cache *conversation.Store,
	historyWindow int,
	model string,
) *ChatService {
	return &ChatService{
		asker:    asker,
		sessions: sessions,
		uploads:  uploads,
		messages: messages,
		aiLogs:   aiLogs,
		cache:    cache,
		window:   historyWindow,
		model:    model,
	}
}

// Ask processes one user message end to end.
func (s *ChatService) Ask(ctx context.Context, in ChatInput) (*ChatResult, error) {
	input := strings.TrimSpace(in.Input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	sess, userID, err := s.resolveSession(ctx, in.UserID, in.SessionID)
	if err != nil {
		return nil, err
	}

	buffer, err := s.bufferFor(ctx, sess)
	if err != nil {
		return nil, err
	}

	effective, err := s.spliceUpload(ctx, sess.SessionID, input)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reply, askErr := s.asker.Ask(ctx, buffer.Window(s.window), effective)
	if askErr != nil {
		// external-service failure continues the conversation inline
		reply = agent.Reply{Kind: agent.KindText, Text: fmt.Sprintf("I encountered an error: %v", askErr)}
	}

	stored := reply.Text
	if reply.Kind == agent.KindImage {
		stored = imageStoredMarker
	}

	if err := s.sessions.AppendExchange(ctx, sess.SessionID, input, stored); err != nil {
		return nil, err
	}
	buffer.Append(input, stored)

	s.logCall(ctx, sess.SessionID, reply, askErr, start)

	return &ChatResult{
		Type:      reply.Kind,
		Message:   reply.Text,
		SessionID: sess.SessionID,
		UserID:    userID,
	}, nil
}

// resolveSession honors an explicit, still-valid session token and falls
// back to the user's resolve-or-create path otherwise. It returns the
// effective user id: a request carrying only a session token continues as
// that session's owner, and a missing identity is minted.
func (s *ChatService) resolveSession(ctx context.Context, userID, sessionID string) (*models.Session, string, error) {
	if sessionID != "" {
		sess, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, "", err
		}
		// a token only counts for its owner; anyone else's token is
		// ignored rather than granting access to the session history
		if sess != nil && (userID == "" || sess.UserID == userID) {
			if sess.IsActive && time.Since(sess.StartTime) <= s.sessions.TTL() {
				return sess, sess.UserID, nil
			}
			// a superseded or expired session keeps no cached history
			s.cache.Drop(sess.SessionID)
		}
	}

	if userID == "" {
		userID = uuid.NewString()
	}
	sess, err := s.sessions.ResolveOrCreate(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	return sess, userID, nil
}

// bufferFor returns the cached conversation buffer, rebuilding it from the
// durable message log on a cache miss or after eviction.
func (s *ChatService) bufferFor(ctx context.Context, sess *models.Session) (*conversation.Buffer, error) {
	if b := s.cache.Get(sess.SessionID); b != nil {
		return b, nil
	}

	b := conversation.NewBuffer(sess.StartTime)
	msgs, err := s.messages.ListBySession(ctx, sess.SessionID)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		b.Append(m.Message.User, m.Message.AI)
	}
	s.cache.Put(sess.SessionID, b)
	return b, nil
}

// spliceUpload folds the latest upload into the prompt when the one-shot
// auto-use flag is set or the user text names the reference file. Either
// trigger splices once; auto-use is consumed whenever its upload was used.
func (s *ChatService) spliceUpload(ctx context.Context, sessionID, input string) (string, error) {
	up, err := s.uploads.Latest(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if up == nil {
		return input, nil
	}
	if !up.AutoUse && !strings.Contains(strings.ToLower(input), referencePhrase) {
		return input, nil
	}

	if up.AutoUse {
		if err := s.uploads.ConsumeAutoUse(ctx, up.ID); err != nil {
			return "", err
		}
	}
	return buildReferencePrompt(input, up), nil
}

func buildReferencePrompt(input string, up *models.Upload) string {
	var b strings.Builder
	b.WriteString(input)
	b.WriteString("\n\n[Reference file: ")
	b.WriteString(up.Filename)
	b.WriteString("]\n")
	b.Write(up.FileData)
	return b.String()
}

// logCall records the model invocation for operators. Best effort: a
// logging failure never fails the request.
func (s *ChatService) logCall(ctx context.Context, sessionID string, reply agent.Reply, askErr error, start time.Time) {
	entry := models.AILog{
		SessionID:       sessionID,
		ModelName:       s.model,
		Action:          string(reply.Kind),
		DurationMs:      time.Since(start).Milliseconds(),
		Success:         askErr == nil,
		ResponseExcerpt: excerpt(reply.Text, 200),
		RequestedAt:     start,
		CompletedAt:     time.Now(),
	}
	if askErr != nil {
		msg := askErr.Error()
		entry.ErrorMessage = &msg
	}
	if _, err := s.aiLogs.Insert(ctx, entry); err != nil {
		logger.Log.Warnf("failed to insert ai_log: %v", err)
	}
}

func excerpt(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
