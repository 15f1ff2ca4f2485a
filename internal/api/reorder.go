package api

import (
	"encoding/json"
	"errors"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
)

func (s *Api) reorderHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ReorderParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_REORDER, nil, err
	}
	if m.MovedId == "" {
		return common.UPDATE_REORDER, nil, errors.New("moved_id is required")
	}
	moved, err := s.manager.ReorderTasks(m.MovedId, m.TargetId)
	if err != nil {
		return common.UPDATE_REORDER, nil, err
	}
	return common.UPDATE_REORDER, &common.ReorderResponse{Moved: moved}, nil
}
