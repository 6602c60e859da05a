package models

import (
	"time"

	"Fundoo/types"

	"gorm.io/datatypes"
)

// ReminderJob 持久化的提醒任务，进程重启后由调度器重新加载
type ReminderJob struct {
	ID        uint64                                   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string                                   `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uk_reminder_name" json:"name"`
	NoteID    uint64                                   `gorm:"column:note_id;not null;index:idx_reminder_note" json:"note_id"`
	Spec      string                                   `gorm:"column:spec;type:varchar(64);not null" json:"spec"`
	Payload   datatypes.JSONType[types.ReminderPayload] `gorm:"column:payload" json:"payload"`
	CreatedAt time.Time                                `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time                                `gorm:"column:updated_at" json:"updated_at"`
}

func (r ReminderJob) TableName() string { return "reminder_jobs" }
