package handler

import (
	"Fundoo/pkg/response"
	"Fundoo/service"
	"errors"
	"net/http"
)

// bizError 将领域错误转换为带 HTTP 状态码的业务错误，未知错误原样返回由 Wrap 记录并返回 500
func bizError(err error) error {
	var notCollab *service.NotACollaboratorError
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		return response.NewError(http.StatusNotFound, "Note not found")
	case errors.Is(err, service.ErrNotAuthorized):
		return response.NewError(http.StatusNotFound, "Note not found or not authorized")
	case errors.Is(err, service.ErrNoNotes):
		return response.NewError(http.StatusNotFound, "No notes found")
	case errors.Is(err, service.ErrLabelNotFound):
		return response.NewError(http.StatusNotFound, "Label not found")
	case errors.Is(err, service.ErrLabelsNotFound):
		return response.NewError(http.StatusBadRequest, "No matching labels found")
	case errors.Is(err, service.ErrSelfCollaboration):
		return response.NewError(http.StatusBadRequest, "You cannot add yourself or the note owner as a collaborator")
	case errors.Is(err, service.ErrUnknownUsers):
		return response.NewError(http.StatusBadRequest, "One or more user ids are invalid")
	case errors.Is(err, service.ErrNoCollaborators):
		return response.NewError(http.StatusBadRequest, "Note has no collaborators")
	case errors.As(err, &notCollab):
		return response.NewError(http.StatusBadRequest, notCollab.Error())
	}
	return err
}

func invalidRequest(err error) error {
	return response.NewError(http.StatusUnprocessableEntity, err.Error())
}
