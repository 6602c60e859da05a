package handler

import (
	"Fundoo/middleware"
	"Fundoo/pkg/context"
	"Fundoo/pkg/response"
	"Fundoo/pkg/utils"
	"Fundoo/service"
	"Fundoo/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Note struct {
	NoteService   service.INoteService
	Authenticator middleware.Authenticator
}

func (n *Note) RegisterRouter(r gin.IRouter) {
	g := r.Group("/notes", middleware.Auth(n.Authenticator))
	g.POST("/", context.Wrap(n.Create))
	g.GET("/", context.Wrap(n.List))
	g.GET("/archive", context.Wrap(n.ListArchived))
	g.GET("/trash", context.Wrap(n.ListTrashed))
	g.PATCH("/archive/:id", context.Wrap(n.ToggleArchive))
	g.PATCH("/trash/:id", context.Wrap(n.ToggleTrash))
	g.PATCH("/add-collaborators", context.Wrap(n.AddCollaborators))
	g.PATCH("/remove-collaborators", context.Wrap(n.RemoveCollaborators))
	g.GET("/:id", context.Wrap(n.Get))
	g.PUT("/:id", context.Wrap(n.Update))
	g.DELETE("/:id", context.Wrap(n.Delete))
	g.POST("/:id/add-labels/", context.Wrap(n.AddLabels))
	g.DELETE("/:id/remove-labels/", context.Wrap(n.RemoveLabels))
}

// Create 创建笔记
func (n *Note) Create(c *gin.Context) error {
	actor, err := context.GetActor(c)
	if err != nil {
		return err
	}

	var req types.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	note, err := n.NoteService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		return bizError(err)
	}
	response.Created(c, "Note created successfully", note)
	return nil
}

// List 用户拥有或参与协作的全部笔记
func (n *Note) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	notes, fromCache, err := n.NoteService.List(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	if fromCache {
		response.Success(c, "Notes fetched from cache", notes)
	} else {
		response.Success(c, "Notes fetched from database", notes)
	}
	return nil
}

func (n *Note) ListArchived(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	notes, err := n.NoteService.ListArchived(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Archived notes retrieved", notes)
	return nil
}

func (n *Note) ListTrashed(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	notes, err := n.NoteService.ListTrashed(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Trashed notes retrieved", notes)
	return nil
}

func (n *Note) Get(c *gin.Context) error {
	uid, noteID, err := n.target(c)
	if err != nil {
		return err
	}

	note, err := n.NoteService.Get(c.Request.Context(), uid, noteID)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Note fetched successfully", note)
	return nil
}

// Update 全量更新
func (n *Note) Update(c *gin.Context) error {
	actor, err := context.GetActor(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	var req types.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	note, err := n.NoteService.Update(c.Request.Context(), actor, noteID, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Note updated successfully", note)
	return nil
}

func (n *Note) Delete(c *gin.Context) error {
	uid, noteID, err := n.target(c)
	if err != nil {
		return err
	}

	if err := n.NoteService.Delete(c.Request.Context(), uid, noteID); err != nil {
		return bizError(err)
	}
	response.Success(c, "Note deleted successfully!", nil)
	return nil
}

func (n *Note) ToggleArchive(c *gin.Context) error {
	uid, noteID, err := n.target(c)
	if err != nil {
		return err
	}

	note, err := n.NoteService.ToggleArchive(c.Request.Context(), uid, noteID)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Archive status toggled", note)
	return nil
}

func (n *Note) ToggleTrash(c *gin.Context) error {
	uid, noteID, err := n.target(c)
	if err != nil {
		return err
	}

	note, err := n.NoteService.ToggleTrash(c.Request.Context(), uid, noteID)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Trash status toggled", note)
	return nil
}

// AddLabels 标签不存在时返回 404
func (n *Note) AddLabels(c *gin.Context) error {
	uid, noteID, err := n.target(c)
	if err != nil {
		return err
	}

	var req types.LabelIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	note, err := n.NoteService.AddLabels(c.Request.Context(), uid, noteID, req.LabelIDs)
	if errors.Is(err, service.ErrLabelsNotFound) {
		return response.NewError(http.StatusNotFound, "One or more labels not found")
	}
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Labels added successfully", note)
	return nil
}

func (n *Note) RemoveLabels(c *gin.Context) error {
	uid, noteID, err := n.target(c)
	if err != nil {
		return err
	}

	var req types.LabelIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	note, err := n.NoteService.RemoveLabels(c.Request.Context(), uid, noteID, req.LabelIDs)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Labels removed successfully", note)
	return nil
}

func (n *Note) AddCollaborators(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	var req types.AddCollaboratorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	note, err := n.NoteService.AddCollaborators(c.Request.Context(), uid, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Collaborators added successfully", note)
	return nil
}

func (n *Note) RemoveCollaborators(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	var req types.RemoveCollaboratorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	note, err := n.NoteService.RemoveCollaborators(c.Request.Context(), uid, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Collaborators removed successfully", note)
	return nil
}

// target 当前用户与路径中的笔记 ID
func (n *Note) target(c *gin.Context) (uint64, uint64, error) {
	uid, err := context.GetUserID(c)
	if err != nil {
		return 0, 0, err
	}
	noteID, err := pathID(c)
	if err != nil {
		return 0, 0, err
	}
	return uid, noteID, nil
}

func pathID(c *gin.Context) (uint64, error) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return 0, response.NewError(http.StatusUnprocessableEntity, "Invalid id")
	}
	return id, nil
}
