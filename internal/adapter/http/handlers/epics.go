package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/pkg/apierrors"
)

func (h *TaskHandler) ListEpics(c *gin.Context) {
	epics, err := h.taskService.ListEpics(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(epics))
}

func (h *TaskHandler) GetEpic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	epic, err := h.taskService.GetEpic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, zap.Int("epic_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(epic))
}

func (h *TaskHandler) ListEpicSubtasks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	subtasks, err := h.taskService.ListEpicSubtasks(c.Request.Context(), id)
	if err != nil {
		if epicNotFound(c, err) {
			return
		}
		respondError(c, err, apierrors.MsgFailListSubtasks, zap.Int("epic_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(subtasks))
}

func (h *TaskHandler) CreateEpic(c *gin.Context) {
	var req dto.EpicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c)
		return
	}
	epic, err := validation.BuildEpic(req)
	if err != nil {
		badPayload(c)
		return
	}

	created, err := h.taskService.CreateEpic(c.Request.Context(), epic)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(created))
}

func (h *TaskHandler) UpdateEpic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.EpicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c)
		return
	}
	epic, err := validation.BuildEpic(req)
	if err != nil {
		badPayload(c)
		return
	}
	if epic, err = epic.WithID(id); err != nil {
		badPayload(c)
		return
	}

	updated, err := h.taskService.UpdateEpic(c.Request.Context(), epic)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Int("epic_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(updated))
}

// RefreshEpic recomputes the derived status and schedule of one epic.
func (h *TaskHandler) RefreshEpic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	epic, err := h.taskService.RefreshEpic(c.Request.Context(), id)
	if err != nil {
		if epicNotFound(c, err) {
			return
		}
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Int("epic_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(epic))
}

func (h *TaskHandler) DeleteEpic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteEpic(c.Request.Context(), id); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, zap.Int("epic_id", id))
		return
	}

	c.Status(http.StatusOK)
}

func (h *TaskHandler) DeleteAllEpics(c *gin.Context) {
	if err := h.taskService.DeleteAllEpics(c.Request.Context()); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusOK)
}
