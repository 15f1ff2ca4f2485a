package api

import (
	"encoding/json"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
)

func (s *Api) flushHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	if err := s.manager.Flush(); err != nil {
		return common.UPDATE_FLUSH, nil, err
	}
	s.log.Println("Flushed all tasks")
	return common.UPDATE_FLUSH, nil, nil
}
