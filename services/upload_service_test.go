package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsOversizedBeforeWrite(t *testing.T) {
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo)

	data := bytes.Repeat([]byte{0x1}, MaxUploadBytes+1)
	_, err := svc.Store(context.Background(), "sess-1", "big.bin", data, "application/octet-stream", false)

	assert.ErrorIs(t, err, ErrUploadTooLarge)
	assert.Empty(t, repo.uploads, "oversized upload must not reach the store")
}

func TestStoreAndFetchLatest(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo)

	_, err := svc.Store(ctx, "sess-1", "first.txt", []byte("one"), "text/plain", false)
	require.NoError(t, err)
	_, err = svc.Store(ctx, "sess-1", "second.txt", []byte("two"), "text/plain", true)
	require.NoError(t, err)

	latest, err := svc.Latest(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "second.txt", latest.Filename)
	assert.True(t, latest.AutoUse)

	none, err := svc.Latest(ctx, "sess-2")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestConsumeAutoUseClearsFlag(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo)

	stored, err := svc.Store(ctx, "sess-1", "ref.txt", []byte("content"), "text/plain", true)
	require.NoError(t, err)

	require.NoError(t, svc.ConsumeAutoUse(ctx, stored.ID))

	latest, err := svc.Latest(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, latest.AutoUse)
}

func TestConsumeAutoUseOnlyTouchesOneUpload(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo)

	older, err := svc.Store(ctx, "sess-1", "ref.txt", []byte("v1"), "text/plain", true)
	require.NoError(t, err)
	newer, err := svc.Store(ctx, "sess-1", "ref.txt", []byte("v2"), "text/plain", true)
	require.NoError(t, err)
	require.NotEqual(t, older.ID, newer.ID)

	// consuming the newer upload must not clear the flag of the older one
	// just because the filenames collide
	require.NoError(t, svc.ConsumeAutoUse(ctx, newer.ID))

	for _, u := range repo.uploads {
		switch u.ID {
		case newer.ID:
			assert.False(t, u.AutoUse)
		case older.ID:
			assert.True(t, u.AutoUse)
		}
	}
}
