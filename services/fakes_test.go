package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"copydesk/agent"
	"copydesk/conversation"
	"copydesk/models"
)

type fakeUserRepo struct {
	upserted []string
}

func (f *fakeUserRepo) UpsertByUserID(_ context.Context, userID string) error {
	f.upserted = append(f.upserted, userID)
	return nil
}

type fakeSessionRepo struct {
	sessions []*models.Session
}

func (f *fakeSessionRepo) Insert(_ context.Context, s *models.Session) error {
	cp := *s
	f.sessions = append(f.sessions, &cp)
	return nil
}

func (f *fakeSessionRepo) FindBySessionID(_ context.Context, sessionID string) (*models.Session, error) {
	for _, s := range f.sessions {
		if s.SessionID == sessionID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindActiveByUser(_ context.Context, userID string) (*models.Session, error) {
	var active []*models.Session
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}
	sort.Slice(active, func(i, j int) bool { return active[i].StartTime.After(active[j].StartTime) })
	cp := *active[0]
	return &cp, nil
}

func (f *fakeSessionRepo) Deactivate(_ context.Context, sessionID string) error {
	now := time.Now()
	for _, s := range f.sessions {
		if s.SessionID == sessionID {
			s.IsActive = false
			s.EndTime = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) SetTitleIfEmpty(_ context.Context, sessionID, title string) error {
	for _, s := range f.sessions {
		if s.SessionID == sessionID && s.Title == "" {
			s.Title = title
		}
	}
	return nil
}

func (f *fakeSessionRepo) ListByUser(_ context.Context, userID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

type fakeMessageRepo struct {
	msgs []*models.Message
}

func (f *fakeMessageRepo) Insert(_ context.Context, m *models.Message) error {
	cp := *m
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	f.msgs = append(f.msgs, &cp)
	return nil
}

func (f *fakeMessageRepo) ListBySession(_ context.Context, sessionID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.msgs {
		if m.SessionID == sessionID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeUploadRepo struct {
	uploads    []*models.Upload
	clearCalls int
}

func (f *fakeUploadRepo) Insert(_ context.Context, u *models.Upload) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	f.uploads = append(f.uploads, &cp)
	return nil
}

func (f *fakeUploadRepo) FindLatestBySession(_ context.Context, sessionID string) (*models.Upload, error) {
	var latest *models.Upload
	for _, u := range f.uploads {
		if u.SessionID != sessionID {
			continue
		}
		if latest == nil || u.CreatedAt.After(latest.CreatedAt) {
			latest = u
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeUploadRepo) ClearAutoUse(_ context.Context, id primitive.ObjectID) error {
	f.clearCalls++
	for _, u := range f.uploads {
		if u.ID == id {
			u.AutoUse = false
		}
	}
	return nil
}

type fakeAILogRepo struct {
	logs []models.AILog
}

func (f *fakeAILogRepo) Insert(_ context.Context, log models.AILog) (*mongo.InsertOneResult, error) {
	f.logs = append(f.logs, log)
	return &mongo.InsertOneResult{}, nil
}

// fakeAsker records what the policy layer receives and replays a scripted
// reply.
type fakeAsker struct {
	inputs    []string
	histories [][]conversation.Exchange
	reply     agent.Reply
	err       error
}

func (f *fakeAsker) Ask(_ context.Context, history []conversation.Exchange, input string) (agent.Reply, error) {
	f.inputs = append(f.inputs, input)
	f.histories = append(f.histories, history)
	if f.err != nil {
		return agent.Reply{}, f.err
	}
	if f.reply.Kind == "" {
		return agent.Reply{Kind: agent.KindText, Text: "generated copy"}, nil
	}
	return f.reply, nil
}
