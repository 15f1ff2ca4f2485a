package api

import (
	"encoding/json"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
	"github.com/taskbell/taskbell/pkg/belllib"
)

func (s *Api) createHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.CreateParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_CREATE, nil, err
	}
	t, err := s.manager.CreateTask(m.Title, m.Description, m.IntervalMinutes, &belllib.TaskOpts{
		Cron: m.Cron,
	})
	if err != nil {
		return common.UPDATE_CREATE, nil, err
	}
	s.log.Println("Created task", t.ID, "("+t.Title+")")
	return common.UPDATE_CREATE, &common.CreateResponse{Task: &t}, nil
}
