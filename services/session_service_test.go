package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(ttl time.Duration) (*SessionService, *fakeSessionRepo, *fakeMessageRepo) {
	sessions := &fakeSessionRepo{}
	messages := &fakeMessageRepo{}
	svc := NewSessionService(&fakeUserRepo{}, sessions, messages, ttl)
	return svc, sessions, messages
}

func TestResolveOrCreateReusesSessionWithinWindow(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionService(24 * time.Hour)

	first, err := svc.ResolveOrCreate(ctx, "user-1")
	require.NoError(t, err)
	second, err := svc.ResolveOrCreate(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestResolveOrCreateSupersedesAfterWindow(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newSessionService(24 * time.Hour)

	current := time.Now()
	svc.now = func() time.Time { return current }

	first, err := svc.ResolveOrCreate(ctx, "user-1")
	require.NoError(t, err)

	current = current.Add(25 * time.Hour)
	second, err := svc.ResolveOrCreate(ctx, "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)

	// the old session is superseded, never deleted
	old, err := sessions.FindBySessionID(ctx, first.SessionID)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.False(t, old.IsActive)
	assert.NotNil(t, old.EndTime)
}

func TestResolveOrCreateIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionService(24 * time.Hour)

	a, err := svc.ResolveOrCreate(ctx, "user-a")
	require.NoError(t, err)
	b, err := svc.ResolveOrCreate(ctx, "user-b")
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestCreateExplicitForcesNewSession(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newSessionService(24 * time.Hour)

	first, err := svc.ResolveOrCreate(ctx, "user-1")
	require.NoError(t, err)
	fresh, err := svc.CreateExplicit(ctx, "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, fresh.SessionID)

	old, err := sessions.FindBySessionID(ctx, first.SessionID)
	require.NoError(t, err)
	assert.False(t, old.IsActive)

	listed, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, fresh.SessionID, listed[0].SessionID)
}

func TestAppendExchangeSetsTitleExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, sessions, messages := newSessionService(24 * time.Hour)

	sess, err := svc.ResolveOrCreate(ctx, "user-1")
	require.NoError(t, err)

	firstText := strings.Repeat("a", 60)
	require.NoError(t, svc.AppendExchange(ctx, sess.SessionID, firstText, "reply one"))
	require.NoError(t, svc.AppendExchange(ctx, sess.SessionID, "a completely different message", "reply two"))

	got, err := sessions.FindBySessionID(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50), got.Title)

	stored, err := messages.ListBySession(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, firstText, stored[0].Message.User)
	assert.Equal(t, "reply one", stored[0].Message.AI)
}

func TestDeriveTitleKeepsShortMessages(t *testing.T) {
	assert.Equal(t, "short title", deriveTitle("short title"))
	assert.Equal(t, 50, len([]rune(deriveTitle(strings.Repeat("한", 80)))))
}
