package common

import "github.com/taskbell/taskbell/pkg/belllib"

type InputTaskId struct {
	TaskId string `json:"task_id"`
}

type CreateParams struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	IntervalMinutes int    `json:"interval_minutes"`
	Cron            string `json:"cron,omitempty"`
}

type CreateResponse struct {
	Task *belllib.Task `json:"task"`
}

type UpdateParams struct {
	TaskId          string `json:"task_id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	IntervalMinutes int    `json:"interval_minutes"`
	Cron            string `json:"cron,omitempty"`
}

type UpdateResponse struct {
	Task *belllib.Task `json:"task"`
}

type DeleteParams struct {
	TaskId string `json:"task_id"`
}

type ReorderParams struct {
	MovedId  string `json:"moved_id"`
	TargetId string `json:"target_id"`
}

type ReorderResponse struct {
	Moved bool `json:"moved"`
}

type ListParams struct{}

type ListResponse struct {
	Tasks []belllib.Task `json:"tasks"`
}

type FlushParams struct{}

// AttachParams subscribes the connection to reminder broadcasts. An empty
// TaskId attaches to every task.
type AttachParams struct {
	TaskId string `json:"task_id,omitempty"`
}

type AttachResponse struct {
	TaskId string `json:"task_id,omitempty"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

// ReminderResponse is broadcast to attached clients whenever a task's
// reminder fires.
type ReminderResponse struct {
	Task    *belllib.Task `json:"task"`
	FiredAt int64         `json:"fired_at"`
}
