package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sneakerhub/internal/app"
	"sneakerhub/internal/transport/http/response"
)

type ForumHandler struct {
	forumService *app.ForumService
}

type CreateThreadRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content"`
	Author  string `json:"author" binding:"max=64"`
}

type UpdateThreadRequest struct {
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content"`
	Author  string `json:"author" binding:"max=64"`
}

func NewForumHandler(forumService *app.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

func (h *ForumHandler) CreateThread(c *gin.Context) {
	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	thread, err := h.forumService.CreateThread(c.Request.Context(), app.CreateThreadInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create thread failed")
		}
		return
	}

	response.OK(c, thread)
}

func (h *ForumHandler) ListThreads(c *gin.Context) {
	threads, err := h.forumService.ListThreads()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list threads failed")
		return
	}
	response.OK(c, threads)
}

func (h *ForumHandler) GetThread(c *gin.Context) {
	id, ok := threadID(c)
	if !ok {
		return
	}

	thread, err := h.forumService.GetThread(id)
	if err != nil {
		h.respondThreadError(c, err, "fetch thread failed")
		return
	}
	response.OK(c, thread)
}

func (h *ForumHandler) UpdateThread(c *gin.Context) {
	id, ok := threadID(c)
	if !ok {
		return
	}

	var req UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	thread, err := h.forumService.UpdateThread(c.Request.Context(), id, app.UpdateThreadInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	})
	if err != nil {
		h.respondThreadError(c, err, "update thread failed")
		return
	}
	response.OK(c, thread)
}

func (h *ForumHandler) LikeThread(c *gin.Context) {
	id, ok := threadID(c)
	if !ok {
		return
	}

	thread, err := h.forumService.LikeThread(c.Request.Context(), id)
	if err != nil {
		h.respondThreadError(c, err, "like thread failed")
		return
	}
	response.OK(c, thread)
}

func (h *ForumHandler) UnlikeThread(c *gin.Context) {
	id, ok := threadID(c)
	if !ok {
		return
	}

	thread, err := h.forumService.UnlikeThread(c.Request.Context(), id)
	if err != nil {
		h.respondThreadError(c, err, "unlike thread failed")
		return
	}
	response.OK(c, thread)
}

func (h *ForumHandler) DeleteThread(c *gin.Context) {
	id, ok := threadID(c)
	if !ok {
		return
	}

	if err := h.forumService.DeleteThread(c.Request.Context(), id); err != nil {
		h.respondThreadError(c, err, "delete thread failed")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *ForumHandler) respondThreadError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrThreadNotFound):
		response.Error(c, http.StatusNotFound, response.CodeThreadNotFound, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func threadID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid thread id")
		return 0, false
	}
	return uint(parsed), true
}
