package models

import "time"

// Label 用户私有的标签，通过 note_labels 与笔记多对多关联
type Label struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"column:color;type:varchar(50);not null;default:''" json:"color"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_labels_user" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (l Label) TableName() string { return "labels" }
