package mapper

import (
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Type:        string(task.Type),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Duration:    int64(task.Duration / time.Minute),
		StartTime:   FormatTime(task.StartTime),
		EndTime:     FormatTime(task.EndTime()),
	}

	switch task.Type {
	case domain.TypeSubtask:
		epicID := task.EpicID()
		item.EpicID = &epicID
	case domain.TypeEpic:
		item.SubtaskIDs = task.SubtaskIDs()
	}

	return item
}

func FormatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(time.RFC3339Nano)
	return &formatted
}
