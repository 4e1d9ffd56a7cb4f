package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/scripts/internal/model"
)

// TaskScriptChanged is the task type published after every successful write.
const TaskScriptChanged = "script:changed"

// Action names the kind of write that produced a script:changed task.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ScriptChangedPayload is the JSON payload of a script:changed task.
type ScriptChangedPayload struct {
	Action Action       `json:"action"`
	Script model.Script `json:"script"`
}

// NewScriptChangedTask builds the task with up to 3 retries on the default
// queue and a 30 second handler timeout.
func NewScriptChangedTask(action Action, script model.Script) (*asynq.Task, error) {
	payload, err := json.Marshal(ScriptChangedPayload{
		Action: action,
		Script: script,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskScriptChanged,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
