package bellcli

import (
	"encoding/json"

	"github.com/taskbell/taskbell/common"
)

// Handler processes daemon updates. Implementations receive raw JSON
// messages and are responsible for unmarshaling them.
type Handler interface {
	Handle(json.RawMessage) error
}

// ReminderHandler processes reminder broadcasts from the daemon,
// optionally filtered to a single task id.
type ReminderHandler struct {
	TaskId   string
	Callback func(*common.ReminderResponse) error
}

// NewReminderHandler creates a handler for reminder updates. An empty
// taskId receives reminders for every task.
func NewReminderHandler(taskId string, callback func(*common.ReminderResponse) error) *ReminderHandler {
	return &ReminderHandler{
		TaskId:   taskId,
		Callback: callback,
	}
}

func (h *ReminderHandler) Handle(m json.RawMessage) error {
	var v common.ReminderResponse
	err := json.Unmarshal(m, &v)
	if err != nil {
		return err
	}
	if h.TaskId != "" && (v.Task == nil || v.Task.ID != h.TaskId) {
		return nil
	}
	return h.Callback(&v)
}

// OnReminder registers a reminder handler with the client's dispatcher.
func (c *Client) OnReminder(taskId string, callback func(*common.ReminderResponse) error) {
	if c.d.Handlers == nil {
		c.d.Handlers = make(map[common.UpdateType]Handler)
	}
	c.d.Handlers[common.UPDATE_REMINDER] = NewReminderHandler(taskId, callback)
}
