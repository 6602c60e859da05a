package service

import (
	"Fundoo/dao"
	"Fundoo/middleware"
	"Fundoo/models"
	"Fundoo/pkg/log"
	"Fundoo/types"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ ILabelService = (*LabelService)(nil)

type ILabelService interface {
	Create(ctx context.Context, userID uint64, req *types.CreateLabelRequest) (*types.Label, error)
	List(ctx context.Context, userID uint64) ([]types.Label, error)
	Update(ctx context.Context, userID, labelID uint64, req *types.CreateLabelRequest) (*types.Label, error)
	Delete(ctx context.Context, userID, labelID uint64) error
}

// LabelService 标签只对所有者可见
// 改名或删除后刷新所有挂载了该标签的笔记快照
type LabelService struct {
	LabelDAO    *dao.LabelDAO
	NoteDAO     *dao.NoteDAO
	NoteService *NoteService
}

func (s *LabelService) Create(ctx context.Context, userID uint64, req *types.CreateLabelRequest) (*types.Label, error) {
	label := &models.Label{Name: req.Name, Color: req.Color, UserID: userID}
	if err := s.LabelDAO.Create(ctx, label); err != nil {
		return nil, err
	}
	middleware.TrackNoteOperation("create_label")

	res := NewLabel(label)
	return &res, nil
}

func (s *LabelService) List(ctx context.Context, userID uint64) ([]types.Label, error) {
	labels, err := s.LabelDAO.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]types.Label, 0, len(labels))
	for i := range labels {
		res = append(res, NewLabel(&labels[i]))
	}
	return res, nil
}

func (s *LabelService) Update(ctx context.Context, userID, labelID uint64, req *types.CreateLabelRequest) (*types.Label, error) {
	label, err := s.find(ctx, userID, labelID)
	if err != nil {
		return nil, err
	}

	label.Name = req.Name
	label.Color = req.Color
	if err := s.LabelDAO.Update(ctx, label); err != nil {
		return nil, err
	}
	middleware.TrackNoteOperation("update_label")

	s.refreshNotes(ctx, labelID)
	res := NewLabel(label)
	return &res, nil
}

func (s *LabelService) Delete(ctx context.Context, userID, labelID uint64) error {
	if _, err := s.find(ctx, userID, labelID); err != nil {
		return err
	}

	// 删除前记下受影响的笔记，删除后关联已不存在
	noteIDs, err := s.NoteDAO.NoteIDsByLabel(ctx, labelID)
	if err != nil {
		return err
	}
	if err := s.LabelDAO.Delete(ctx, labelID); err != nil {
		return err
	}
	middleware.TrackNoteOperation("delete_label")

	if len(noteIDs) > 0 {
		if err := s.NoteService.Refresh(ctx, noteIDs); err != nil {
			log.L.Warn("refresh notes after label delete failed", zap.Uint64("label_id", labelID), zap.Error(err))
		}
	}
	return nil
}

func (s *LabelService) find(ctx context.Context, userID, labelID uint64) (*models.Label, error) {
	label, err := s.LabelDAO.FindOwnedOne(ctx, userID, labelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLabelNotFound
	}
	return label, err
}

func (s *LabelService) refreshNotes(ctx context.Context, labelID uint64) {
	noteIDs, err := s.NoteDAO.NoteIDsByLabel(ctx, labelID)
	if err == nil && len(noteIDs) > 0 {
		err = s.NoteService.Refresh(ctx, noteIDs)
	}
	if err != nil {
		log.L.Warn("refresh notes after label update failed", zap.Uint64("label_id", labelID), zap.Error(err))
	}
}
