package types

import (
	"fmt"
	"strconv"
	"time"
)

const (
	ReminderOperationCreate = "create"
	ReminderOperationUpdate = "update"
)

// ReminderPayload 提醒任务触发时投递的内容
type ReminderPayload struct {
	UserEmail string `json:"user_email"`
	Operation string `json:"operation"`
	NoteID    uint64 `json:"note_id"`
}

// ReminderJobName 同一笔记同一操作只对应一个任务名
func ReminderJobName(operation string, noteID uint64) string {
	if operation == ReminderOperationUpdate {
		return "reminder_update_task_" + strconv.FormatUint(noteID, 10)
	}
	return "reminder_task_" + strconv.FormatUint(noteID, 10)
}

// FireSpec 由提醒时间拆出的 分/时/日/月，不限定年份，
// 因此任务会在每年的同一时刻重复触发，直到被移除
type FireSpec struct {
	Minute int `json:"minute"`
	Hour   int `json:"hour"`
	Day    int `json:"day"`
	Month  int `json:"month"`
}

func NewFireSpec(t time.Time) FireSpec {
	return FireSpec{
		Minute: t.Minute(),
		Hour:   t.Hour(),
		Day:    t.Day(),
		Month:  int(t.Month()),
	}
}

// Cron 标准五段式 cron 表达式
func (f FireSpec) Cron() string {
	return fmt.Sprintf("%d %d %d %d *", f.Minute, f.Hour, f.Day, f.Month)
}
