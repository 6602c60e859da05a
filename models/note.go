package models

import (
	"time"
)

type Note struct {
	ID            uint64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID        uint64             `gorm:"column:user_id;not null;index:idx_notes_user_flags" json:"user_id"`
	Title         string             `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description   string             `gorm:"column:description;type:text" json:"description"`
	Color         string             `gorm:"column:color;type:varchar(50);not null;default:''" json:"color"`
	IsArchive     bool               `gorm:"column:is_archive;not null;default:false;index:idx_notes_user_flags" json:"is_archive"`
	IsTrash       bool               `gorm:"column:is_trash;not null;default:false;index:idx_notes_user_flags" json:"is_trash"`
	Reminder      *time.Time         `gorm:"column:reminder" json:"reminder"`
	Labels        []Label            `gorm:"many2many:note_labels;" json:"labels"`
	Collaborators []NoteCollaborator `gorm:"foreignKey:NoteID" json:"collaborators"`
	CreatedAt     time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"column:updated_at" json:"updated_at"`
}

func (n Note) TableName() string {
	return "notes"
}

// NoteFilter 列表查询的状态过滤
type NoteFilter int

const (
	// NoteFilterAll 不区分状态
	NoteFilterAll NoteFilter = iota
	// NoteFilterArchived 已归档且未删除
	NoteFilterArchived
	// NoteFilterTrashed 已删除
	NoteFilterTrashed
)
