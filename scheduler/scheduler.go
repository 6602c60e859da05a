package scheduler

import (
	"Fundoo/config"
	"Fundoo/dao"
	"Fundoo/models"
	"Fundoo/pkg/log"
	"Fundoo/types"
	"context"
	"fmt"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// 单次投递超时
const dispatchTimeout = 10 * time.Second

// Scheduler 按名称管理提醒任务，同名任务覆盖旧任务
// 任务持久化到 reminder_jobs，启动时重新加载
type Scheduler struct {
	cron       *cron.Cron
	entries    cmap.ConcurrentMap[string, cron.EntryID]
	store      *dao.ReminderJobDAO
	dispatcher Dispatcher
}

func NewScheduler(conf *config.Config, store *dao.ReminderJobDAO, dispatcher Dispatcher) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(conf.App.Location()),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger)),
		),
		entries:    cmap.New[cron.EntryID](),
		store:      store,
		dispatcher: dispatcher,
	}
}

// Start 加载已持久化的任务并启动
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.cron.Start()
	log.L.Info("reminder scheduler started", zap.Int("jobs", s.entries.Count()))
	return nil
}

// Stop 停止调度并等待执行中的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.L.Info("reminder scheduler stopped")
}

// Load 注册数据库中的全部任务
func (s *Scheduler) Load(ctx context.Context) error {
	jobs, err := s.store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load reminder jobs: %w", err)
	}
	for _, job := range jobs {
		if err := s.register(job.Name, job.Spec, job.Payload.Data()); err != nil {
			log.L.Warn("skip invalid reminder job", zap.String("job", job.Name), zap.Error(err))
		}
	}
	return nil
}

// Schedule 持久化并注册任务，同名任务被替换
func (s *Scheduler) Schedule(ctx context.Context, name string, spec types.FireSpec, payload types.ReminderPayload) error {
	expr := spec.Cron()
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid fire spec %q: %w", expr, err)
	}

	err := s.store.Upsert(ctx, &models.ReminderJob{
		Name:    name,
		NoteID:  payload.NoteID,
		Spec:    expr,
		Payload: datatypes.NewJSONType(payload),
	})
	if err != nil {
		return err
	}
	return s.register(name, expr, payload)
}

// Unschedule 移除任务，不存在的名称忽略
func (s *Scheduler) Unschedule(ctx context.Context, names ...string) error {
	for _, name := range names {
		if id, ok := s.entries.Pop(name); ok {
			s.cron.Remove(id)
		}
	}
	return s.store.DeleteByNames(ctx, names...)
}

// Has 任务是否已注册
func (s *Scheduler) Has(name string) bool {
	return s.entries.Has(name)
}

// Next 任务下次触发时间
func (s *Scheduler) Next(name string) (time.Time, bool) {
	id, ok := s.entries.Get(name)
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

func (s *Scheduler) register(name, expr string, payload types.ReminderPayload) error {
	id, err := s.cron.AddFunc(expr, func() { s.fire(name, payload) })
	if err != nil {
		return err
	}
	s.entries.Upsert(name, id, func(exist bool, old, new cron.EntryID) cron.EntryID {
		if exist {
			s.cron.Remove(old)
		}
		return new
	})
	return nil
}

func (s *Scheduler) fire(name string, payload types.ReminderPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := s.dispatcher.Dispatch(ctx, payload); err != nil {
		log.L.Error("dispatch reminder failed", zap.String("job", name), zap.Error(err))
		return
	}
	log.L.Info("reminder fired", zap.String("job", name), zap.Uint64("note_id", payload.NoteID))
}

// cronLogger 将 cron 内部日志接到 zap
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.L.Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.L.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
