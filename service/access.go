package service

import (
	"Fundoo/models"
	"Fundoo/types"
)

// Authorize 计算用户对笔记的访问级别
// 所有者 readwrite，协作者取其授权，其余无权限
func Authorize(actorID uint64, note *models.Note) types.AccessLevel {
	if note == nil {
		return types.AccessNone
	}
	if note.UserID == actorID {
		return types.AccessReadWrite
	}
	for _, c := range note.Collaborators {
		if c.UserID == actorID {
			access := types.AccessLevel(c.Access)
			if !access.Valid() {
				return types.AccessNone
			}
			return access
		}
	}
	return types.AccessNone
}
