package service

import (
	"Fundoo/config"
	"Fundoo/dao"
	"Fundoo/dao/cache"
	"Fundoo/middleware"
	"Fundoo/models"
	"Fundoo/pkg/log"
	"Fundoo/pkg/utils"
	"Fundoo/types"
	"context"
	"errors"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ INoteService = (*NoteService)(nil)

// 标签变更后批量刷新缓存的并发数
const refreshConcurrency = 8

// ReminderScheduler 提醒任务调度
type ReminderScheduler interface {
	Schedule(ctx context.Context, name string, spec types.FireSpec, payload types.ReminderPayload) error
	Unschedule(ctx context.Context, names ...string) error
}

type INoteService interface {
	Create(ctx context.Context, actor types.Actor, req *types.CreateNoteRequest) (*types.NoteSnapshot, error)
	Get(ctx context.Context, actorID, noteID uint64) (*types.NoteSnapshot, error)
	// List 返回用户拥有或参与协作的全部笔记，fromCache 标识是否命中缓存
	List(ctx context.Context, actorID uint64) (notes []*types.NoteSnapshot, fromCache bool, err error)
	ListArchived(ctx context.Context, actorID uint64) ([]*types.NoteSnapshot, error)
	ListTrashed(ctx context.Context, actorID uint64) ([]*types.NoteSnapshot, error)
	Update(ctx context.Context, actor types.Actor, noteID uint64, req *types.CreateNoteRequest) (*types.NoteSnapshot, error)
	Delete(ctx context.Context, actorID, noteID uint64) error
	ToggleArchive(ctx context.Context, actorID, noteID uint64) (*types.NoteSnapshot, error)
	ToggleTrash(ctx context.Context, actorID, noteID uint64) (*types.NoteSnapshot, error)
	AddLabels(ctx context.Context, actorID, noteID uint64, labelIDs []uint64) (*types.NoteSnapshot, error)
	RemoveLabels(ctx context.Context, actorID, noteID uint64, labelIDs []uint64) (*types.NoteSnapshot, error)
	AddCollaborators(ctx context.Context, actorID uint64, req *types.AddCollaboratorsRequest) (*types.NoteSnapshot, error)
	RemoveCollaborators(ctx context.Context, actorID uint64, req *types.RemoveCollaboratorsRequest) (*types.NoteSnapshot, error)
	Refresh(ctx context.Context, noteIDs []uint64) error
}

// NoteService 笔记写入数据库后在同一请求内同步缓存
// 缓存按可见用户分桶：所有者和每个协作者各持一份快照
type NoteService struct {
	Config    *config.Config
	NoteDAO   *dao.NoteDAO
	LabelDAO  *dao.LabelDAO
	Cache     *cache.NoteStorage
	Validator *CollaboratorValidator
	Scheduler ReminderScheduler
}

// Create 创建笔记
func (s *NoteService) Create(ctx context.Context, actor types.Actor, req *types.CreateNoteRequest) (*types.NoteSnapshot, error) {
	note := &models.Note{
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		IsArchive:   req.IsArchive,
		IsTrash:     req.IsTrash,
		Reminder:    req.Reminder.TimePtr(),
	}
	if err := s.NoteDAO.Create(ctx, note); err != nil {
		return nil, err
	}

	note, err := s.load(ctx, note.ID)
	if err != nil {
		return nil, err
	}

	snap := s.sync(ctx, note, "create")
	s.scheduleReminder(ctx, actor, note, types.ReminderOperationCreate)
	return snap, nil
}

// Get 读取单条笔记，同时刷新缓存
func (s *NoteService) Get(ctx context.Context, actorID, noteID uint64) (*types.NoteSnapshot, error) {
	note, err := s.authorize(ctx, actorID, noteID, false)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, note, "get"), nil
}

func (s *NoteService) List(ctx context.Context, actorID uint64) ([]*types.NoteSnapshot, bool, error) {
	cached, warm, err := s.Cache.GetAll(ctx, actorID)
	if err != nil {
		s.cacheFailed("list", err, zap.Uint64("user_id", actorID))
	} else if warm {
		middleware.TrackListSource("cache")
		if len(cached) == 0 {
			return nil, true, ErrNoNotes
		}
		return cached, true, nil
	}

	notes, err := s.NoteDAO.ListVisible(ctx, actorID, models.NoteFilterAll)
	if err != nil {
		return nil, false, err
	}
	snaps := toSnapshots(notes)
	if err := s.Cache.Warm(ctx, actorID, snaps); err != nil {
		s.cacheFailed("warm", err, zap.Uint64("user_id", actorID))
	}

	middleware.TrackListSource("database")
	if len(snaps) == 0 {
		return nil, false, ErrNoNotes
	}
	return snaps, false, nil
}

// ListArchived 已归档且未删除
func (s *NoteService) ListArchived(ctx context.Context, actorID uint64) ([]*types.NoteSnapshot, error) {
	notes, err := s.NoteDAO.ListVisible(ctx, actorID, models.NoteFilterArchived)
	if err != nil {
		return nil, err
	}
	return toSnapshots(notes), nil
}

// ListTrashed 回收站
func (s *NoteService) ListTrashed(ctx context.Context, actorID uint64) ([]*types.NoteSnapshot, error) {
	notes, err := s.NoteDAO.ListVisible(ctx, actorID, models.NoteFilterTrashed)
	if err != nil {
		return nil, err
	}
	return toSnapshots(notes), nil
}

// Update 全量更新，所有者不可变
func (s *NoteService) Update(ctx context.Context, actor types.Actor, noteID uint64, req *types.CreateNoteRequest) (*types.NoteSnapshot, error) {
	note, err := s.authorize(ctx, actor.ID, noteID, true)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Description = req.Description
	note.Color = req.Color
	note.IsArchive = req.IsArchive
	note.IsTrash = req.IsTrash
	note.Reminder = req.Reminder.TimePtr()
	if err := s.NoteDAO.Update(ctx, note); err != nil {
		return nil, err
	}

	note, err = s.load(ctx, noteID)
	if err != nil {
		return nil, err
	}

	snap := s.sync(ctx, note, "update")
	s.scheduleReminder(ctx, actor, note, types.ReminderOperationUpdate)
	return snap, nil
}

// Delete 删除笔记，从所有可见用户的桶中移除并取消提醒
func (s *NoteService) Delete(ctx context.Context, actorID, noteID uint64) error {
	note, err := s.authorize(ctx, actorID, noteID, true)
	if err != nil {
		return err
	}

	if err := s.NoteDAO.Delete(ctx, noteID); err != nil {
		return err
	}

	s.evict(ctx, noteID, viewers(note)...)
	middleware.TrackNoteOperation("delete")

	names := []string{
		types.ReminderJobName(types.ReminderOperationCreate, noteID),
		types.ReminderJobName(types.ReminderOperationUpdate, noteID),
	}
	if err := s.Scheduler.Unschedule(ctx, names...); err != nil {
		log.L.Warn("unschedule reminder failed", zap.Uint64("note_id", noteID), zap.Error(err))
	}
	return nil
}

func (s *NoteService) ToggleArchive(ctx context.Context, actorID, noteID uint64) (*types.NoteSnapshot, error) {
	return s.toggle(ctx, actorID, noteID, "archive", "is_archive", func(n *models.Note) bool { return n.IsArchive })
}

func (s *NoteService) ToggleTrash(ctx context.Context, actorID, noteID uint64) (*types.NoteSnapshot, error) {
	return s.toggle(ctx, actorID, noteID, "trash", "is_trash", func(n *models.Note) bool { return n.IsTrash })
}

func (s *NoteService) toggle(ctx context.Context, actorID, noteID uint64, operation, column string, current func(*models.Note) bool) (*types.NoteSnapshot, error) {
	note, err := s.authorize(ctx, actorID, noteID, true)
	if err != nil {
		return nil, err
	}

	if err := s.NoteDAO.UpdateFlag(ctx, noteID, column, !current(note)); err != nil {
		return nil, err
	}

	note, err = s.load(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, note, operation), nil
}

// AddLabels 全部标签存在且属于当前用户才挂载
func (s *NoteService) AddLabels(ctx context.Context, actorID, noteID uint64, labelIDs []uint64) (*types.NoteSnapshot, error) {
	note, err := s.authorize(ctx, actorID, noteID, true)
	if err != nil {
		return nil, err
	}

	ids := utils.UniqueIDs(labelIDs)
	labels, err := s.LabelDAO.FindOwned(ctx, actorID, ids)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 || len(labels) != len(ids) {
		return nil, ErrLabelsNotFound
	}

	if err := s.NoteDAO.AttachLabels(ctx, note, labels); err != nil {
		return nil, err
	}

	note, err = s.load(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, note, "add_labels"), nil
}

// RemoveLabels 移除已挂载的标签，未挂载的忽略
// 一个都没有命中时报错且笔记不变
func (s *NoteService) RemoveLabels(ctx context.Context, actorID, noteID uint64, labelIDs []uint64) (*types.NoteSnapshot, error) {
	note, err := s.authorize(ctx, actorID, noteID, true)
	if err != nil {
		return nil, err
	}

	labels, err := s.LabelDAO.FindOwned(ctx, actorID, utils.UniqueIDs(labelIDs))
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, ErrLabelsNotFound
	}

	attached := make(map[uint64]struct{}, len(note.Labels))
	for _, l := range note.Labels {
		attached[l.ID] = struct{}{}
	}
	detach := make([]models.Label, 0, len(labels))
	for _, l := range labels {
		if _, ok := attached[l.ID]; ok {
			detach = append(detach, l)
		}
	}
	if len(detach) == 0 {
		return nil, ErrLabelsNotFound
	}

	if err := s.NoteDAO.DetachLabels(ctx, note, detach); err != nil {
		return nil, err
	}

	note, err = s.load(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, note, "remove_labels"), nil
}

// AddCollaborators 添加或覆盖协作者
func (s *NoteService) AddCollaborators(ctx context.Context, actorID uint64, req *types.AddCollaboratorsRequest) (*types.NoteSnapshot, error) {
	ids := utils.UniqueIDs(req.UserIDs)
	if containsID(ids, actorID) {
		return nil, ErrSelfCollaboration
	}

	note, err := s.authorize(ctx, actorID, req.NoteID, true)
	if err != nil {
		return nil, err
	}
	if containsID(ids, note.UserID) {
		return nil, ErrSelfCollaboration
	}

	users, err := s.Validator.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]models.NoteCollaborator, 0, len(users))
	for _, u := range users {
		rows = append(rows, models.NoteCollaborator{
			NoteID: note.ID,
			UserID: u.ID,
			Email:  u.Email,
			Access: string(req.Access),
		})
	}
	if err := s.NoteDAO.UpsertCollaborators(ctx, rows); err != nil {
		return nil, err
	}

	note, err = s.load(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, note, "add_collaborators"), nil
}

// RemoveCollaborators 移除协作者，任一 ID 不是协作者则整体失败
func (s *NoteService) RemoveCollaborators(ctx context.Context, actorID uint64, req *types.RemoveCollaboratorsRequest) (*types.NoteSnapshot, error) {
	note, err := s.authorize(ctx, actorID, req.NoteID, true)
	if err != nil {
		return nil, err
	}
	if len(note.Collaborators) == 0 {
		return nil, ErrNoCollaborators
	}

	current := make(map[uint64]struct{}, len(note.Collaborators))
	for _, c := range note.Collaborators {
		current[c.UserID] = struct{}{}
	}
	ids := utils.UniqueIDs(req.UserIDs)
	for _, id := range ids {
		if _, ok := current[id]; !ok {
			return nil, &NotACollaboratorError{UserID: id}
		}
	}

	if err := s.NoteDAO.RemoveCollaborators(ctx, note.ID, ids); err != nil {
		return nil, err
	}

	note, err = s.load(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	snap := s.sync(ctx, note, "remove_collaborators")
	s.evict(ctx, note.ID, ids...)
	return snap, nil
}

// Refresh 重新生成笔记快照并写入缓存，用于标签改名或删除后
func (s *NoteService) Refresh(ctx context.Context, noteIDs []uint64) error {
	notes, err := s.NoteDAO.FindByIDs(ctx, noteIDs)
	if err != nil {
		return err
	}

	p := pool.New().WithMaxGoroutines(refreshConcurrency)
	for _, note := range notes {
		p.Go(func() {
			s.sync(ctx, note, "refresh")
		})
	}
	p.Wait()
	return nil
}

// load 读取最新记录
func (s *NoteService) load(ctx context.Context, noteID uint64) (*models.Note, error) {
	note, err := s.NoteDAO.FindByID(ctx, noteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	return note, err
}

// authorize 先判断存在，再判断权限
func (s *NoteService) authorize(ctx context.Context, actorID, noteID uint64, write bool) (*models.Note, error) {
	note, err := s.load(ctx, noteID)
	if err != nil {
		return nil, err
	}

	access := Authorize(actorID, note)
	if !access.CanRead() || (write && !access.CanWrite()) {
		return nil, ErrNotAuthorized
	}
	return note, nil
}

// sync 将快照写入所有可见用户的桶，缓存失败只记录日志
func (s *NoteService) sync(ctx context.Context, note *models.Note, operation string) *types.NoteSnapshot {
	snap := NewNoteSnapshot(note)
	users := viewers(note)
	if err := s.Cache.Set(ctx, snap, users...); err != nil {
		s.cacheFailed(operation, err, zap.Uint64("note_id", note.ID))
		s.invalidate(ctx, users...)
	}
	if operation != "get" && operation != "refresh" {
		middleware.TrackNoteOperation(operation)
	}
	return snap
}

// evict 从指定用户的桶中删除笔记
func (s *NoteService) evict(ctx context.Context, noteID uint64, users ...uint64) {
	if err := s.Cache.Remove(ctx, noteID, users...); err != nil {
		s.cacheFailed("evict", err, zap.Uint64("note_id", noteID))
		s.invalidate(ctx, users...)
	}
}

// invalidate 写缓存失败后尽量清空整个桶，下次列表回源重建
func (s *NoteService) invalidate(ctx context.Context, users ...uint64) {
	for _, uid := range users {
		if err := s.Cache.Invalidate(ctx, uid); err != nil {
			log.L.Warn("invalidate cache bucket failed", zap.Uint64("user_id", uid), zap.Error(err))
		}
	}
}

func (s *NoteService) cacheFailed(operation string, err error, fields ...zap.Field) {
	middleware.TrackCacheError(operation)
	log.L.Warn("note cache failed", append(fields, zap.String("operation", operation), zap.Error(err))...)
}

// scheduleReminder 设置了提醒时间才调度，失败不影响笔记写入
func (s *NoteService) scheduleReminder(ctx context.Context, actor types.Actor, note *models.Note, operation string) {
	if note.Reminder == nil {
		return
	}

	name := types.ReminderJobName(operation, note.ID)
	payload := types.ReminderPayload{
		UserEmail: actor.Email,
		Operation: operation,
		NoteID:    note.ID,
	}
	spec := types.NewFireSpec(note.Reminder.In(s.Config.App.Location()))
	if err := s.Scheduler.Schedule(ctx, name, spec, payload); err != nil {
		log.L.Warn("schedule reminder failed", zap.String("job", name), zap.Error(err))
	}
}

func toSnapshots(notes []*models.Note) []*types.NoteSnapshot {
	snaps := make([]*types.NoteSnapshot, 0, len(notes))
	for _, n := range notes {
		snaps = append(snaps, NewNoteSnapshot(n))
	}
	return snaps
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
