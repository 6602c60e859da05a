package cache

import (
	"Fundoo/types"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*NoteStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	return NewNoteStorage(rds), mr
}

func TestNoteStorage_SetAndGet(t *testing.T) {
	ctx := context.Background()
	storage, mr := newTestStorage(t)

	note := &types.NoteSnapshot{
		ID:     3,
		Title:  "t",
		UserID: 1,
		Collaborators: types.Collaborators{
			2: {Email: "b@x.io", Access: types.AccessRead},
		},
	}
	require.NoError(t, storage.Set(ctx, note, 1, 2))

	assert.True(t, mr.Exists("user_1"))
	assert.NotEmpty(t, mr.HGet("user_2", "note_3"))

	got, err := storage.Get(ctx, 2, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, note.Collaborators, got.Collaborators)

	missing, err := storage.Get(ctx, 9, 3)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, storage.Remove(ctx, 3, 2))
	assert.Empty(t, mr.HGet("user_2", "note_3"))
	assert.NotEmpty(t, mr.HGet("user_1", "note_3"))
}

func TestNoteStorage_GetAllRequiresWarm(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t)

	require.NoError(t, storage.Set(ctx, &types.NoteSnapshot{ID: 1, UserID: 1}, 1))
	notes, warm, err := storage.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.False(t, warm)
	assert.Nil(t, notes)

	require.NoError(t, storage.Warm(ctx, 1, []*types.NoteSnapshot{
		{ID: 5, UserID: 1},
		{ID: 2, UserID: 1},
	}))
	notes, warm, err = storage.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.True(t, warm)
	require.Len(t, notes, 3)
	assert.Equal(t, []uint64{1, 2, 5}, []uint64{notes[0].ID, notes[1].ID, notes[2].ID})
}

func TestNoteStorage_WarmEmptyBucket(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t)

	require.NoError(t, storage.Warm(ctx, 7, nil))
	notes, warm, err := storage.GetAll(ctx, 7)
	require.NoError(t, err)
	assert.True(t, warm)
	assert.Empty(t, notes)

	require.NoError(t, storage.Invalidate(ctx, 7))
	_, warm, err = storage.GetAll(ctx, 7)
	require.NoError(t, err)
	assert.False(t, warm)
}

func TestNoteStorage_Unavailable(t *testing.T) {
	ctx := context.Background()
	storage, mr := newTestStorage(t)
	mr.Close()

	assert.Error(t, storage.Set(ctx, &types.NoteSnapshot{ID: 1}, 1))
	_, _, err := storage.GetAll(ctx, 1)
	assert.Error(t, err)
}
