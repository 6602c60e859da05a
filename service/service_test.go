package service

import (
	"Fundoo/config"
	"Fundoo/dao"
	"Fundoo/dao/cache"
	"Fundoo/pkg/client"
	"Fundoo/pkg/database"
	"Fundoo/types"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users map[uint64]string
	calls int
}

func (f *fakeDirectory) FindUsers(_ context.Context, ids []uint64) ([]client.DirectoryUser, error) {
	f.calls++
	res := make([]client.DirectoryUser, 0, len(ids))
	for _, id := range ids {
		if email, ok := f.users[id]; ok {
			res = append(res, client.DirectoryUser{ID: id, Email: email})
		}
	}
	return res, nil
}

type scheduledJob struct {
	spec    types.FireSpec
	payload types.ReminderPayload
}

type fakeScheduler struct {
	mu   sync.Mutex
	jobs map[string]scheduledJob
}

func (f *fakeScheduler) Schedule(_ context.Context, name string, spec types.FireSpec, payload types.ReminderPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[name] = scheduledJob{spec: spec, payload: payload}
	return nil
}

func (f *fakeScheduler) Unschedule(_ context.Context, names ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range names {
		delete(f.jobs, name)
	}
	return nil
}

type testEnv struct {
	notes     *NoteService
	labels    *LabelService
	mr        *miniredis.Miniredis
	directory *fakeDirectory
	scheduler *fakeScheduler
}

var (
	alice = types.Actor{ID: 1, Email: "alice@x.io"}
	bob   = types.Actor{ID: 2, Email: "bob@x.io"}
	carol = types.Actor{ID: 3, Email: "carol@x.io"}
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conf, err := config.Parse([]byte("app:\n  timezone: UTC\n"))
	require.NoError(t, err)

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	directory := &fakeDirectory{users: map[uint64]string{
		alice.ID: alice.Email,
		bob.ID:   bob.Email,
		carol.ID: carol.Email,
	}}
	scheduler := &fakeScheduler{jobs: map[string]scheduledJob{}}

	noteDAO := dao.NewNoteDAO(db)
	labelDAO := dao.NewLabelDAO(db)
	notes := &NoteService{
		Config:    conf,
		NoteDAO:   noteDAO,
		LabelDAO:  labelDAO,
		Cache:     cache.NewNoteStorage(rds),
		Validator: &CollaboratorValidator{Directory: directory},
		Scheduler: scheduler,
	}
	return &testEnv{
		notes:     notes,
		labels:    &LabelService{LabelDAO: labelDAO, NoteDAO: noteDAO, NoteService: notes},
		mr:        mr,
		directory: directory,
		scheduler: scheduler,
	}
}

func (e *testEnv) createNote(t *testing.T, actor types.Actor, title string) *types.NoteSnapshot {
	t.Helper()
	snap, err := e.notes.Create(context.Background(), actor, &types.CreateNoteRequest{Title: title})
	require.NoError(t, err)
	return snap
}

func (e *testEnv) createLabel(t *testing.T, actor types.Actor, name string) *types.Label {
	t.Helper()
	label, err := e.labels.Create(context.Background(), actor.ID, &types.CreateLabelRequest{Name: name})
	require.NoError(t, err)
	return label
}
