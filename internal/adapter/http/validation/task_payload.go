package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// naiveLayout is accepted for clients that send local date-times without an
// offset; such values are read as UTC.
const naiveLayout = "2006-01-02T15:04:05"

func ParseStartTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidTaskPayload
	}
	return parsed, nil
}

func BuildTask(req dto.TaskRequest, raw map[string]json.RawMessage) (domain.Task, error) {
	title, status, start, duration, err := commonFields(req, raw)
	if err != nil {
		return domain.Task{}, err
	}
	if hasJSONField(raw, "epic_id") {
		return domain.Task{}, ErrInvalidTaskPayload
	}
	return domain.NewTask(title, strings.TrimSpace(req.Description), status, start, duration), nil
}

func BuildSubtask(req dto.TaskRequest, raw map[string]json.RawMessage) (domain.Task, error) {
	title, status, start, duration, err := commonFields(req, raw)
	if err != nil {
		return domain.Task{}, err
	}
	if req.EpicID == nil {
		return domain.Task{}, ErrInvalidTaskPayload
	}

	subtask, err := domain.NewSubtask(title, strings.TrimSpace(req.Description), status, start, duration, *req.EpicID)
	if err != nil {
		return domain.Task{}, ErrInvalidTaskPayload
	}
	return subtask, nil
}

func BuildEpic(req dto.EpicRequest) (domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Task{}, ErrInvalidTaskPayload
	}
	return domain.NewEpic(title, strings.TrimSpace(req.Description)), nil
}

// DecodeRaw exposes which fields were present in the body, so an explicit
// null can be told apart from an omitted field.
func DecodeRaw(body []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrInvalidTaskPayload
	}
	return raw, nil
}

func commonFields(req dto.TaskRequest, raw map[string]json.RawMessage) (string, domain.Status, *time.Time, time.Duration, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", "", nil, 0, ErrInvalidTaskPayload
	}

	if hasJSONField(raw, "status") && req.Status == nil {
		return "", "", nil, 0, ErrInvalidTaskPayload
	}
	status := domain.StatusNew
	if req.Status != nil {
		status = domain.Status(*req.Status)
	}

	if hasJSONField(raw, "duration") && req.Duration == nil {
		return "", "", nil, 0, ErrInvalidTaskPayload
	}
	var duration time.Duration
	if req.Duration != nil {
		var err error
		if duration, err = domain.DurationFromMinutes(*req.Duration); err != nil {
			return "", "", nil, 0, ErrInvalidTaskPayload
		}
	}

	var start *time.Time
	if req.StartTime != nil {
		parsed, err := ParseStartTime(*req.StartTime)
		if err != nil {
			return "", "", nil, 0, err
		}
		start = &parsed
	}

	return title, status, start, duration, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

// BuildSubtaskUpdate accepts a body without epic_id; the stored epic link is
// kept on update whatever the body says.
func BuildSubtaskUpdate(req dto.TaskRequest, raw map[string]json.RawMessage) (domain.Task, error) {
	if req.EpicID == nil {
		epicID := domain.MinID
		req.EpicID = &epicID
	}
	return BuildSubtask(req, raw)
}
