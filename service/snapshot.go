package service

import (
	"Fundoo/models"
	"Fundoo/types"
)

// NewNoteSnapshot 由数据库记录构造完整快照
func NewNoteSnapshot(note *models.Note) *types.NoteSnapshot {
	snap := &types.NoteSnapshot{
		ID:            note.ID,
		Title:         note.Title,
		Description:   note.Description,
		Color:         note.Color,
		IsArchive:     note.IsArchive,
		IsTrash:       note.IsTrash,
		UserID:        note.UserID,
		Labels:        make([]types.Label, 0, len(note.Labels)),
		Collaborators: make(types.Collaborators, len(note.Collaborators)),
	}
	if note.Reminder != nil {
		snap.Reminder = types.NewTimestamp(note.Reminder.UTC())
	}
	for _, l := range note.Labels {
		snap.Labels = append(snap.Labels, NewLabel(&l))
	}
	for _, c := range note.Collaborators {
		snap.Collaborators[c.UserID] = types.Collaborator{Email: c.Email, Access: types.AccessLevel(c.Access)}
	}
	return snap
}

func NewLabel(l *models.Label) types.Label {
	return types.Label{ID: l.ID, Name: l.Name, Color: l.Color, UserID: l.UserID}
}

// viewers 能看到该笔记的用户：所有者与全部协作者
func viewers(note *models.Note) []uint64 {
	ids := make([]uint64, 0, len(note.Collaborators)+1)
	ids = append(ids, note.UserID)
	for _, c := range note.Collaborators {
		ids = append(ids, c.UserID)
	}
	return ids
}
