package scheduler

import (
	"Fundoo/config"
	"Fundoo/pkg/log"
	"Fundoo/pkg/rocketmq"
	"Fundoo/types"
	"context"

	"go.uber.org/zap"
)

// Dispatcher 投递到期的提醒
type Dispatcher interface {
	Dispatch(ctx context.Context, payload types.ReminderPayload) error
}

// LogDispatcher 只记录日志，reminder.enabled 为 false 时使用
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, payload types.ReminderPayload) error {
	log.L.Info("reminder due",
		zap.Uint64("note_id", payload.NoteID),
		zap.String("operation", payload.Operation),
		zap.String("user_email", payload.UserEmail),
	)
	return nil
}

// NewDispatcher 启用时投递到 RocketMQ，返回的 cleanup 关闭 producer
func NewDispatcher(conf *config.Config) (Dispatcher, func(), error) {
	if !conf.Reminder.Enabled {
		return LogDispatcher{}, func() {}, nil
	}

	p, err := rocketmq.InitProducer(conf.RocketMQ)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := p.Shutdown(); err != nil {
			log.L.Warn("shutdown reminder producer failed", zap.Error(err))
		}
	}
	return &rocketmq.ReminderProducer{Producer: p, Topic: conf.Reminder.Topic}, cleanup, nil
}
