package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskSessionReset clears a form session back to defaults after the
// confirmation screen has been shown.
const TaskSessionReset = "quotation.session.reset"

// TaskOTPCleanup purges expired admin OTP tokens.
const TaskOTPCleanup = "auth.otp.cleanup"

type SessionResetPayload struct {
	SessionID string `json:"sessionId"`
}

func NewSessionResetTask(payload SessionResetPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionReset, data), nil
}

func ParseSessionResetPayload(task *asynq.Task) (SessionResetPayload, error) {
	var payload SessionResetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SessionResetPayload{}, err
	}
	return payload, nil
}

func NewOTPCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskOTPCleanup, nil)
}
