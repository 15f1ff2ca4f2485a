package api

import (
	"encoding/json"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
)

// attachHandler subscribes the connection to reminder broadcasts. With a
// task_id set only that task's reminders are delivered; without one the
// connection watches every task.
func (s *Api) attachHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.AttachParams
	if len(body) > 0 {
		if err := json.Unmarshal(body, &m); err != nil {
			return common.UPDATE_ATTACH, nil, err
		}
	}
	if m.TaskId != "" {
		if _, err := s.manager.GetTask(m.TaskId); err != nil {
			return common.UPDATE_ATTACH, nil, err
		}
	}
	pool.Attach(m.TaskId, sconn)
	return common.UPDATE_ATTACH, &common.AttachResponse{TaskId: m.TaskId}, nil
}
