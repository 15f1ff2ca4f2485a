package api

import (
	"encoding/json"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
)

func (s *Api) listHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_LIST, &common.ListResponse{
		Tasks: s.manager.GetTasks(),
	}, nil
}
