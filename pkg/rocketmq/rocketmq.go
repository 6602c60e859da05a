package rocketmq

import (
	"Fundoo/config"
	"Fundoo/pkg/log"
	"Fundoo/types"
	"context"
	"encoding/json"
	"strconv"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

func InitProducer(cfg *config.RocketMQConfig) (rocketmq.Producer, error) {
	p, err := rocketmq.NewProducer(
		producer.WithNsResolver(primitive.NewPassthroughResolver(cfg.NameServer)),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		return nil, err
	}
	if err = p.Start(); err != nil {
		return nil, err
	}
	log.L.Info("init producer success")
	return p, nil
}

// ReminderProducer 将到期提醒投递到消息队列，由邮件服务消费
type ReminderProducer struct {
	Producer rocketmq.Producer
	Topic    string
}

func (p *ReminderProducer) Dispatch(ctx context.Context, payload types.ReminderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := primitive.NewMessage(p.Topic, body)
	msg.WithKeys([]string{uuid.NewString()})
	msg.WithShardingKey(strconv.FormatUint(payload.NoteID, 10))
	msg.WithTag(payload.Operation)

	res, err := p.Producer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("reminder dispatched", zap.String("msgId", res.MsgID), zap.Uint64("noteId", payload.NoteID))
	return nil
}
