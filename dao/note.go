package dao

import (
	"Fundoo/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

type NoteDAO struct {
	Repo[models.Note]
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{Repo: NewRepo[models.Note](db)}
}

func preloadRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Labels", func(db *gorm.DB) *gorm.DB { return db.Order("labels.id") }).
		Preload("Collaborators", func(db *gorm.DB) *gorm.DB { return db.Order("note_collaborators.user_id") })
}

// Create 创建笔记
func (d *NoteDAO) Create(ctx context.Context, note *models.Note) error {
	return d.Db.WithContext(ctx).Omit(clause.Associations).Create(note).Error
}

// FindByID 查询笔记及其标签、协作者
// 强制走主库，写后立即读取快照时不受从库延迟影响
func (d *NoteDAO) FindByID(ctx context.Context, id uint64) (*models.Note, error) {
	note := &models.Note{}
	err := preloadRelations(d.Db.WithContext(ctx).Clauses(dbresolver.Write)).
		Where("id = ?", id).
		First(note).Error
	if err != nil {
		return nil, err
	}
	return note, nil
}

// FindByIDs 根据 ID 列表查询笔记
func (d *NoteDAO) FindByIDs(ctx context.Context, ids []uint64) ([]*models.Note, error) {
	if len(ids) == 0 {
		return []*models.Note{}, nil
	}
	var notes []*models.Note
	err := preloadRelations(d.Db.WithContext(ctx).Clauses(dbresolver.Write)).
		Where("id IN ?", ids).
		Order("id").
		Find(&notes).Error
	return notes, err
}

// ListVisible 用户拥有或参与协作的笔记
func (d *NoteDAO) ListVisible(ctx context.Context, userID uint64, filter models.NoteFilter) ([]*models.Note, error) {
	shared := d.Db.Model(&models.NoteCollaborator{}).Select("note_id").Where("user_id = ?", userID)

	query := preloadRelations(d.Db.WithContext(ctx)).
		Where("(user_id = ? OR id IN (?))", userID, shared)

	switch filter {
	case models.NoteFilterArchived:
		query = query.Where("is_archive = ? AND is_trash = ?", true, false)
	case models.NoteFilterTrashed:
		query = query.Where("is_trash = ?", true)
	}

	var notes []*models.Note
	err := query.Order("id").Find(&notes).Error
	return notes, err
}

// Update 全量更新笔记的可编辑字段，零值同样写入
func (d *NoteDAO) Update(ctx context.Context, note *models.Note) error {
	return d.Db.WithContext(ctx).
		Model(note).
		Select("title", "description", "color", "is_archive", "is_trash", "reminder").
		Updates(note).Error
}

// UpdateFlag 更新归档/回收站标记
func (d *NoteDAO) UpdateFlag(ctx context.Context, noteID uint64, column string, value bool) error {
	_, err := d.Repo.UpdateById(ctx, noteID, map[string]any{column: value})
	return err
}

// Delete 删除笔记及其标签关联、协作者
func (d *NoteDAO) Delete(ctx context.Context, noteID uint64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM note_labels WHERE note_id = ?", noteID).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteCollaborator{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, noteID).Error
	})
}

// AttachLabels 挂载标签，已挂载的忽略
func (d *NoteDAO) AttachLabels(ctx context.Context, note *models.Note, labels []models.Label) error {
	if len(labels) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Model(note).Association("Labels").Append(labels)
}

// DetachLabels 移除标签关联，标签本身保留
func (d *NoteDAO) DetachLabels(ctx context.Context, note *models.Note, labels []models.Label) error {
	if len(labels) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Model(note).Association("Labels").Delete(labels)
}

// UpsertCollaborators 写入协作者，已存在的覆盖邮箱和权限
func (d *NoteDAO) UpsertCollaborators(ctx context.Context, rows []models.NoteCollaborator) error {
	if len(rows) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "note_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "access", "updated_at"}),
		}).
		Create(&rows).Error
}

// RemoveCollaborators 移除协作者
func (d *NoteDAO) RemoveCollaborators(ctx context.Context, noteID uint64, userIDs []uint64) error {
	return d.Db.WithContext(ctx).
		Where("note_id = ? AND user_id IN ?", noteID, userIDs).
		Delete(&models.NoteCollaborator{}).Error
}

// NoteIDsByLabel 挂载了该标签的笔记
func (d *NoteDAO) NoteIDsByLabel(ctx context.Context, labelID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Table("note_labels").
		Where("label_id = ?", labelID).
		Order("note_id").
		Pluck("note_id", &ids).Error
	return ids, err
}
