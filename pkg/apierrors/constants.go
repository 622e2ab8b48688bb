package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgEpicNotFound       = "epicNotFound"
	MsgTaskOverlap        = "taskOverlap"
	MsgFailListSubtasks   = "failListSubtasks"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailListHistory    = "failListHistory"
	MsgPersistenceFailure = "persistenceFailure"
)
