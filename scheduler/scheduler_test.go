package scheduler

import (
	"Fundoo/config"
	"Fundoo/dao"
	"Fundoo/pkg/database"
	"Fundoo/types"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu       sync.Mutex
	payloads []types.ReminderPayload
	err      error
}

func (r *recordingDispatcher) Dispatch(_ context.Context, payload types.ReminderPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return r.err
}

func newTestScheduler(t *testing.T, store *dao.ReminderJobDAO, d Dispatcher) *Scheduler {
	t.Helper()
	conf, err := config.Parse([]byte("app:\n  timezone: UTC\n"))
	require.NoError(t, err)
	return NewScheduler(conf, store, d)
}

func newTestStore(t *testing.T) *dao.ReminderJobDAO {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	return dao.NewReminderJobDAO(db)
}

func TestScheduleReplacesSameName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	s := newTestScheduler(t, store, &recordingDispatcher{})

	name := types.ReminderJobName(types.ReminderOperationCreate, 1)
	payload := types.ReminderPayload{UserEmail: "a@x.io", Operation: types.ReminderOperationCreate, NoteID: 1}

	first := types.NewFireSpec(time.Date(2024, 10, 16, 21, 15, 0, 0, time.UTC))
	second := types.NewFireSpec(time.Date(2024, 12, 1, 8, 30, 0, 0, time.UTC))
	require.NoError(t, s.Schedule(ctx, name, first, payload))
	require.NoError(t, s.Schedule(ctx, name, second, payload))

	assert.True(t, s.Has(name))
	assert.Len(t, s.cron.Entries(), 1)

	jobs, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "30 8 1 12 *", jobs[0].Spec)

	s.cron.Start()
	defer s.Stop()
	next, ok := s.Next(name)
	require.True(t, ok)
	assert.Equal(t, time.December, next.Month())
	assert.Equal(t, 8, next.Hour())
	assert.Equal(t, 30, next.Minute())
}

func TestUnschedule(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	s := newTestScheduler(t, store, &recordingDispatcher{})

	name := types.ReminderJobName(types.ReminderOperationUpdate, 2)
	spec := types.FireSpec{Minute: 0, Hour: 9, Day: 1, Month: 1}
	require.NoError(t, s.Schedule(ctx, name, spec, types.ReminderPayload{NoteID: 2}))

	require.NoError(t, s.Unschedule(ctx, name, "reminder_task_2"))
	assert.False(t, s.Has(name))
	assert.Empty(t, s.cron.Entries())

	jobs, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestScheduleRejectsInvalidSpec(t *testing.T) {
	s := newTestScheduler(t, newTestStore(t), &recordingDispatcher{})
	err := s.Schedule(context.Background(), "bad", types.FireSpec{Minute: 61, Hour: 1, Day: 1, Month: 1}, types.ReminderPayload{})
	assert.Error(t, err)
	assert.False(t, s.Has("bad"))
}

func TestStartLoadsPersistedJobs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	before := newTestScheduler(t, store, &recordingDispatcher{})
	spec := types.FireSpec{Minute: 15, Hour: 21, Day: 16, Month: 10}
	require.NoError(t, before.Schedule(ctx, "reminder_task_3", spec, types.ReminderPayload{NoteID: 3}))

	after := newTestScheduler(t, store, &recordingDispatcher{})
	require.NoError(t, after.Start(ctx))
	defer after.Stop()

	assert.True(t, after.Has("reminder_task_3"))
}

func TestFireDispatchesPayload(t *testing.T) {
	d := &recordingDispatcher{}
	s := newTestScheduler(t, newTestStore(t), d)

	payload := types.ReminderPayload{UserEmail: "a@x.io", Operation: types.ReminderOperationCreate, NoteID: 9}
	s.fire("reminder_task_9", payload)

	d.err = errors.New("broker down")
	s.fire("reminder_task_9", payload)

	require.Len(t, d.payloads, 2)
	assert.Equal(t, payload, d.payloads[0])
}

func TestNewDispatcherDisabled(t *testing.T) {
	conf, err := config.Parse([]byte("reminder:\n  enabled: false\n"))
	require.NoError(t, err)

	d, cleanup, err := NewDispatcher(conf)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, LogDispatcher{}, d)
	assert.NoError(t, d.Dispatch(context.Background(), types.ReminderPayload{NoteID: 1}))
}
