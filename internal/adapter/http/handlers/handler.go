package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"
)

// TaskHandler serves tasks, epics and subtasks; they share one id space so a
// single handler keeps the error mapping in one place.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < domain.MinID {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return id, true
}

func badPayload(c *gin.Context) {
	lang := middleware.GetLang(c)
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
	)
}

// bindTaskRequest keeps the raw field map next to the bound request so
// validation can reject explicit nulls.
func bindTaskRequest(c *gin.Context) (dto.TaskRequest, map[string]json.RawMessage, bool) {
	var req dto.TaskRequest
	body, err := c.GetRawData()
	if err != nil {
		badPayload(c)
		return req, nil, false
	}
	raw, err := validation.DecodeRaw(body)
	if err != nil {
		badPayload(c)
		return req, nil, false
	}
	if err := binding.JSON.BindBody(body, &req); err != nil {
		badPayload(c)
		return req, nil, false
	}
	return req, raw, true
}

// respondError maps service errors onto status codes. failKey is the message
// used for unexpected failures.
func respondError(c *gin.Context, err error, failKey string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	var persistenceErr *domain.PersistenceError
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateErrorWithData(http.StatusNotFound, apierrors.MsgTaskNotFound, lang, map[string]any{"ID": c.Param("id")}),
		)
	case errors.Is(err, domain.ErrEpicNotFound):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgEpicNotFound, lang),
		)
	case errors.Is(err, domain.ErrTaskOverlap):
		c.JSON(
			http.StatusNotAcceptable,
			apierrors.CreateError(http.StatusNotAcceptable, apierrors.MsgTaskOverlap, lang),
		)
	case errors.Is(err, domain.ErrInvalidTask),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEpicID):
		badPayload(c)
	case errors.As(err, &persistenceErr):
		zap.L().Error("failed to persist change", append(fields, zap.Error(err))...)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgPersistenceFailure, lang),
		)
	default:
		zap.L().Error("task request failed", append(fields, zap.Error(err))...)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
		)
	}
}

// epicNotFound answers 404 for routes addressing an epic by id; elsewhere a
// missing epic is a bad reference in the body.
func epicNotFound(c *gin.Context, err error) bool {
	if !errors.Is(err, domain.ErrEpicNotFound) {
		return false
	}
	lang := middleware.GetLang(c)
	c.JSON(
		http.StatusNotFound,
		apierrors.CreateError(http.StatusNotFound, apierrors.MsgEpicNotFound, lang),
	)
	return true
}
