package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/pkg/apierrors"
)

func (h *TaskHandler) History(c *gin.Context) {
	tasks, err := h.taskService.History(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListHistory)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) Prioritized(c *gin.Context) {
	tasks, err := h.taskService.Prioritized(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

// EndTime works for any kind of entity; end_time is null when unscheduled.
func (h *TaskHandler) EndTime(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	end, err := h.taskService.EndTime(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, zap.Int("task_id", id))
		return
	}

	c.JSON(http.StatusOK, dto.EndTimeItem{ID: id, EndTime: mapper.FormatTime(end)})
}
