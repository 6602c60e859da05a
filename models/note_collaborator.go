package models

import "time"

// NoteCollaborator 笔记协作者
// 对应表 note_collaborators
// 主键: note_id + user_id
// access: readonly / readwrite
type NoteCollaborator struct {
	NoteID    uint64    `gorm:"column:note_id;primaryKey;autoIncrement:false" json:"note_id"`
	UserID    uint64    `gorm:"column:user_id;primaryKey;autoIncrement:false;index:idx_collaborators_user" json:"user_id"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;default:''" json:"email"`
	Access    string    `gorm:"column:access;type:varchar(20);not null" json:"access"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (n NoteCollaborator) TableName() string { return "note_collaborators" }
