package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/pkg/apierrors"
)

func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	subtasks, err := h.taskService.ListSubtasks(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSubtasks)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(subtasks))
}

func (h *TaskHandler) GetSubtask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	subtask, err := h.taskService.GetSubtask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSubtasks, zap.Int("subtask_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(subtask))
}

func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	req, raw, ok := bindTaskRequest(c)
	if !ok {
		return
	}
	subtask, err := validation.BuildSubtask(req, raw)
	if err != nil {
		badPayload(c)
		return
	}

	created, err := h.taskService.CreateSubtask(c.Request.Context(), subtask)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(created))
}

// UpdateSubtask never moves a subtask to another epic; epic_id may be omitted.
func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, raw, ok := bindTaskRequest(c)
	if !ok {
		return
	}
	subtask, err := validation.BuildSubtaskUpdate(req, raw)
	if err != nil {
		badPayload(c)
		return
	}
	if subtask, err = subtask.WithID(id); err != nil {
		badPayload(c)
		return
	}

	updated, err := h.taskService.UpdateSubtask(c.Request.Context(), subtask)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Int("subtask_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(updated))
}

func (h *TaskHandler) DeleteSubtask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteSubtask(c.Request.Context(), id); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, zap.Int("subtask_id", id))
		return
	}

	c.Status(http.StatusOK)
}

func (h *TaskHandler) DeleteAllSubtasks(c *gin.Context) {
	if err := h.taskService.DeleteAllSubtasks(c.Request.Context()); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusOK)
}
