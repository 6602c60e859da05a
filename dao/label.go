package dao

import (
	"Fundoo/models"
	"context"

	"gorm.io/gorm"
)

type LabelDAO struct {
	Repo[models.Label]
}

func NewLabelDAO(db *gorm.DB) *LabelDAO {
	return &LabelDAO{Repo: NewRepo[models.Label](db)}
}

func (d *LabelDAO) Create(ctx context.Context, label *models.Label) error {
	return d.Db.WithContext(ctx).Create(label).Error
}

// FindOwned 查询用户拥有的标签，不存在或不属于该用户的 ID 被忽略
func (d *LabelDAO) FindOwned(ctx context.Context, userID uint64, ids []uint64) ([]models.Label, error) {
	if len(ids) == 0 {
		return []models.Label{}, nil
	}
	var labels []models.Label
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id").
		Find(&labels).Error
	return labels, err
}

// FindOwnedOne 查询用户拥有的单个标签
func (d *LabelDAO) FindOwnedOne(ctx context.Context, userID, id uint64) (*models.Label, error) {
	return d.Repo.FindByWhere(ctx, "id = ? AND user_id = ?", id, userID)
}

func (d *LabelDAO) ListByUser(ctx context.Context, userID uint64) ([]models.Label, error) {
	var labels []models.Label
	err := d.Db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&labels).Error
	return labels, err
}

func (d *LabelDAO) Update(ctx context.Context, label *models.Label) error {
	return d.Db.WithContext(ctx).Model(label).Select("name", "color").Updates(label).Error
}

// Delete 删除标签及其与笔记的关联
func (d *LabelDAO) Delete(ctx context.Context, labelID uint64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM note_labels WHERE label_id = ?", labelID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Label{}, labelID).Error
	})
}
