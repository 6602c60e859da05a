package service

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrNoNotes           = errors.New("no notes found")
	ErrLabelNotFound     = errors.New("label not found")
	ErrLabelsNotFound    = errors.New("labels not found")
	ErrSelfCollaboration = errors.New("cannot add yourself or the note owner as a collaborator")
	ErrUnknownUsers      = errors.New("one or more user ids do not exist")
	ErrNoCollaborators   = errors.New("note has no collaborators")
)

// NotACollaboratorError 要移除的用户不在协作者列表中
type NotACollaboratorError struct {
	UserID uint64
}

func (e *NotACollaboratorError) Error() string {
	return fmt.Sprintf("user %d is not a collaborator", e.UserID)
}
