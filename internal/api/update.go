package api

import (
	"encoding/json"
	"errors"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
	"github.com/taskbell/taskbell/pkg/belllib"
)

func (s *Api) updateHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.UpdateParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_UPDATE, nil, err
	}
	if m.TaskId == "" {
		return common.UPDATE_UPDATE, nil, errors.New("task_id is required")
	}
	t, err := s.manager.UpdateTask(m.TaskId, m.Title, m.Description, m.IntervalMinutes, &belllib.TaskOpts{
		Cron: m.Cron,
	})
	if err != nil {
		return common.UPDATE_UPDATE, nil, err
	}
	return common.UPDATE_UPDATE, &common.UpdateResponse{Task: &t}, nil
}
