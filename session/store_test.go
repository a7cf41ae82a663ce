package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumecms/plume/models"
)

func TestStoreSaveAndGet(t *testing.T) {
	store := NewStore(nil, time.Hour)
	ctx := context.Background()

	sess := Session{ID: "abc", Username: "admin", LoggedIn: true, CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "admin", got.Username)
	assert.True(t, got.LoggedIn)
}

func TestStoreGetUnknownID(t *testing.T) {
	store := NewStore(nil, time.Hour)

	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "abc", LoggedIn: true}))
	require.NoError(t, store.SetFlash(ctx, "abc", models.Flash{Message: "hi", Level: models.FlashSuccess}))

	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, store.TakeFlash(ctx, "abc"))
}

func TestStoreFlashIsOneShot(t *testing.T) {
	store := NewStore(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SetFlash(ctx, "abc", models.Flash{Message: "Comment added", Level: models.FlashSuccess}))

	flash := store.TakeFlash(ctx, "abc")
	require.NotNil(t, flash)
	assert.Equal(t, "Comment added", flash.Message)
	assert.Equal(t, models.FlashSuccess, flash.Level)

	assert.Nil(t, store.TakeFlash(ctx, "abc"))
}

func TestStoreFlashReplacesPending(t *testing.T) {
	store := NewStore(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SetFlash(ctx, "abc", models.Flash{Message: "first", Level: models.FlashSuccess}))
	require.NoError(t, store.SetFlash(ctx, "abc", models.Flash{Message: "second", Level: models.FlashDanger}))

	flash := store.TakeFlash(ctx, "abc")
	require.NotNil(t, flash)
	assert.Equal(t, "second", flash.Message)
	assert.Equal(t, models.FlashDanger, flash.Level)
}

func TestStoreSessionExpiry(t *testing.T) {
	store := NewStore(nil, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "abc", LoggedIn: true}))
	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}
