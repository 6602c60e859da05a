package handler

import (
	"Fundoo/middleware"
	"Fundoo/pkg/context"
	"Fundoo/pkg/response"
	"Fundoo/service"
	"Fundoo/types"

	"github.com/gin-gonic/gin"
)

type Label struct {
	LabelService  service.ILabelService
	Authenticator middleware.Authenticator
}

func (l *Label) RegisterRouter(r gin.IRouter) {
	g := r.Group("/labels", middleware.Auth(l.Authenticator))
	g.POST("/", context.Wrap(l.Create))
	g.GET("/", context.Wrap(l.List))
	g.PUT("/:id", context.Wrap(l.Update))
	g.DELETE("/:id", context.Wrap(l.Delete))
}

func (l *Label) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	var req types.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	label, err := l.LabelService.Create(c.Request.Context(), uid, &req)
	if err != nil {
		return bizError(err)
	}
	response.Created(c, "Label created successfully", label)
	return nil
}

func (l *Label) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	labels, err := l.LabelService.List(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	if len(labels) == 0 {
		response.Success(c, "No labels found", labels)
		return nil
	}
	response.Success(c, "Labels fetched successfully", labels)
	return nil
}

func (l *Label) Update(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	labelID, err := pathID(c)
	if err != nil {
		return err
	}

	var req types.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}

	label, err := l.LabelService.Update(c.Request.Context(), uid, labelID, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, "Label updated successfully", label)
	return nil
}

func (l *Label) Delete(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	labelID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := l.LabelService.Delete(c.Request.Context(), uid, labelID); err != nil {
		return bizError(err)
	}
	response.Success(c, "Label deleted successfully", nil)
	return nil
}
