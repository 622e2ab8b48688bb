package dto

// TaskItem is the wire form shared by tasks, epics and subtasks. Duration is
// expressed in whole minutes and times in RFC 3339.
type TaskItem struct {
	ID          int     `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	StartTime   *string `json:"start_time,omitempty"`
	Duration    int64   `json:"duration"`
	EndTime     *string `json:"end_time,omitempty"`
	EpicID      *int    `json:"epic_id,omitempty"`
	SubtaskIDs  []int   `json:"subtask_ids,omitempty"`
}

type TaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description" binding:"max=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=NEW IN_PROGRESS DONE"`
	StartTime   *string `json:"start_time"`
	Duration    *int64  `json:"duration" binding:"omitempty,gte=0,lte=153722867"`
	EpicID      *int    `json:"epic_id" binding:"omitempty,gt=0"`
}

// EpicRequest carries the only epic fields a client may set; status and
// schedule are derived from the subtasks.
type EpicRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=65535"`
}

type EndTimeItem struct {
	ID      int     `json:"id"`
	EndTime *string `json:"end_time"`
}
