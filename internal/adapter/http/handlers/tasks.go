package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/pkg/apierrors"
)

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, zap.Int("task_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	req, raw, ok := bindTaskRequest(c)
	if !ok {
		return
	}
	task, err := validation.BuildTask(req, raw)
	if err != nil {
		badPayload(c)
		return
	}

	created, err := h.taskService.CreateTask(c.Request.Context(), task)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(created))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, raw, ok := bindTaskRequest(c)
	if !ok {
		return
	}
	task, err := validation.BuildTask(req, raw)
	if err != nil {
		badPayload(c)
		return
	}
	if task, err = task.WithID(id); err != nil {
		badPayload(c)
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Int("task_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(updated))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, zap.Int("task_id", id))
		return
	}

	c.Status(http.StatusOK)
}

func (h *TaskHandler) DeleteAllTasks(c *gin.Context) {
	if err := h.taskService.DeleteAllTasks(c.Request.Context()); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusOK)
}
