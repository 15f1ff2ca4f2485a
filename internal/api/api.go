package api

import (
	"log"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
	"github.com/taskbell/taskbell/pkg/belllib"
)

// Api binds the socket protocol methods to the task manager.
type Api struct {
	log     *log.Logger
	manager *belllib.Manager
	version string
}

func NewApi(l *log.Logger, m *belllib.Manager, version string) (*Api, error) {
	if l == nil {
		l = log.Default()
	}
	return &Api{
		log:     l,
		manager: m,
		version: version,
	}, nil
}

func (s *Api) RegisterHandlers(server *server.Server) {
	server.RegisterHandler(common.UPDATE_CREATE, s.createHandler)
	server.RegisterHandler(common.UPDATE_UPDATE, s.updateHandler)
	server.RegisterHandler(common.UPDATE_DELETE, s.deleteHandler)
	server.RegisterHandler(common.UPDATE_REORDER, s.reorderHandler)
	server.RegisterHandler(common.UPDATE_LIST, s.listHandler)
	server.RegisterHandler(common.UPDATE_FLUSH, s.flushHandler)
	server.RegisterHandler(common.UPDATE_ATTACH, s.attachHandler)
	server.RegisterHandler(common.UPDATE_VERSION, s.versionHandler)
}

func (s *Api) Close() error {
	return s.manager.Close()
}
