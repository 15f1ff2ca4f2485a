package api

import (
	"encoding/json"
	"errors"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
)

func (s *Api) deleteHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.DeleteParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_DELETE, nil, err
	}
	if m.TaskId == "" {
		return common.UPDATE_DELETE, nil, errors.New("task_id is required")
	}
	if err := s.manager.DeleteTask(m.TaskId); err != nil {
		return common.UPDATE_DELETE, nil, err
	}
	s.log.Println("Deleted task", m.TaskId)
	return common.UPDATE_DELETE, nil, nil
}
