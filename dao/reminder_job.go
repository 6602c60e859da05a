package dao

import (
	"Fundoo/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReminderJobDAO struct {
	Repo[models.ReminderJob]
}

func NewReminderJobDAO(db *gorm.DB) *ReminderJobDAO {
	return &ReminderJobDAO{Repo: NewRepo[models.ReminderJob](db)}
}

// Upsert 同名任务覆盖
func (d *ReminderJobDAO) Upsert(ctx context.Context, job *models.ReminderJob) error {
	return d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"note_id", "spec", "payload", "updated_at"}),
		}).
		Create(job).Error
}

func (d *ReminderJobDAO) DeleteByNames(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Where("name IN ?", names).Delete(&models.ReminderJob{}).Error
}

func (d *ReminderJobDAO) FindAll(ctx context.Context) ([]models.ReminderJob, error) {
	var jobs []models.ReminderJob
	err := d.Db.WithContext(ctx).Order("id").Find(&jobs).Error
	return jobs, err
}

func (d *ReminderJobDAO) FindByName(ctx context.Context, name string) (*models.ReminderJob, error) {
	return d.Repo.FindByWhere(ctx, "name = ?", name)
}
