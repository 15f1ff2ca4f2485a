package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/taskbell/taskbell/pkg/belllib"
)

// Custom JSON-RPC error codes for task operations.
const (
	codeTaskNotFound  = jrpc2.Code(-32001)
	codeSchedulerDown = jrpc2.Code(-32002)
	codeInvalidParams = jrpc2.Code(-32602)
)

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // Auth token (required -- empty means RPC disabled)
	ListenAll bool   // If true, bind to 0.0.0.0 instead of 127.0.0.1
	Port      int    // HTTP port for the /jsonrpc and /ws endpoints
	Version   string // Daemon version
}

// RPCServer hosts the JSON-RPC 2.0 bridge for browser and scripting
// clients: POST /jsonrpc for request/response and GET /ws for a WebSocket
// session that also receives reminder push notifications.
type RPCServer struct {
	bridge   jhttp.Bridge
	methods  handler.Map
	notifier *RPCNotifier
	manager  *belllib.Manager
	l        *log.Logger
	secret   string
	version  string
	addr     string
	server   *http.Server
	mu       sync.Mutex
}

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version string `json:"version"`
}

// TaskResult is a task as exposed over JSON-RPC.
type TaskResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Interval    int    `json:"interval"`
	Cron        string `json:"cron,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

// CreateTaskParams is the input for task.create.
type CreateTaskParams struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Interval    int    `json:"interval,omitempty"`
	Cron        string `json:"cron,omitempty"`
}

// UpdateTaskParams is the input for task.update.
type UpdateTaskParams struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Interval    int    `json:"interval,omitempty"`
	Cron        string `json:"cron,omitempty"`
}

// TaskIDParam is a common input with just a task id.
type TaskIDParam struct {
	ID string `json:"id"`
}

// ReorderTaskParams is the input for task.reorder.
type ReorderTaskParams struct {
	ID     string `json:"id"`
	Before string `json:"before"`
}

// ReorderResult is the response for task.reorder.
type ReorderResult struct {
	Moved bool `json:"moved"`
}

// ListTasksResult is the response for task.list.
type ListTasksResult struct {
	Tasks []*TaskResult `json:"tasks"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// NewRPCServer creates an RPCServer with method handlers and HTTP bridge.
func NewRPCServer(cfg *RPCConfig, m *belllib.Manager, l *log.Logger) *RPCServer {
	if l == nil {
		l = log.Default()
	}
	host := "127.0.0.1"
	if cfg.ListenAll {
		host = "0.0.0.0"
	}
	rs := &RPCServer{
		secret:   cfg.Secret,
		version:  cfg.Version,
		manager:  m,
		l:        l,
		notifier: NewRPCNotifier(l),
		addr:     fmt.Sprintf("%s:%d", host, cfg.Port),
	}

	rs.methods = handler.Map{
		"system.getVersion": handler.New(rs.systemGetVersion),
		"task.create":       handler.New(rs.taskCreate),
		"task.update":       handler.New(rs.taskUpdate),
		"task.delete":       handler.New(rs.taskDelete),
		"task.reorder":      handler.New(rs.taskReorder),
		"task.list":         handler.New(rs.taskList),
		"task.flush":        handler.New(rs.taskFlush),
	}

	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

func toTaskResult(t belllib.Task) *TaskResult {
	return &TaskResult{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Interval:    t.IntervalMinutes,
		Cron:        t.Cron,
		CreatedAt:   t.CreatedAt.Unix(),
	}
}

// rpcError maps belllib sentinels to JSON-RPC error codes.
func rpcError(err error) error {
	switch {
	case errors.Is(err, belllib.ErrTaskNotFound):
		return &jrpc2.Error{Code: codeTaskNotFound, Message: "task not found"}
	case errors.Is(err, belllib.ErrSchedulerDown):
		return &jrpc2.Error{Code: codeSchedulerDown, Message: err.Error()}
	case errors.Is(err, belllib.ErrEmptyTitle), errors.Is(err, belllib.ErrInvalidCron):
		return &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	default:
		return err
	}
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*VersionResult, error) {
	return &VersionResult{Version: rs.version}, nil
}

func (rs *RPCServer) taskCreate(_ context.Context, p *CreateTaskParams) (*TaskResult, error) {
	t, err := rs.manager.CreateTask(p.Title, p.Description, p.Interval, &belllib.TaskOpts{Cron: p.Cron})
	if err != nil {
		return nil, rpcError(err)
	}
	return toTaskResult(t), nil
}

func (rs *RPCServer) taskUpdate(_ context.Context, p *UpdateTaskParams) (*TaskResult, error) {
	if p.ID == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	t, err := rs.manager.UpdateTask(p.ID, p.Title, p.Description, p.Interval, &belllib.TaskOpts{Cron: p.Cron})
	if err != nil {
		return nil, rpcError(err)
	}
	return toTaskResult(t), nil
}

func (rs *RPCServer) taskDelete(_ context.Context, p *TaskIDParam) (*EmptyResult, error) {
	if p.ID == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	if err := rs.manager.DeleteTask(p.ID); err != nil {
		return nil, rpcError(err)
	}
	return &EmptyResult{}, nil
}

func (rs *RPCServer) taskReorder(_ context.Context, p *ReorderTaskParams) (*ReorderResult, error) {
	if p.ID == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	moved, err := rs.manager.ReorderTasks(p.ID, p.Before)
	if err != nil {
		return nil, rpcError(err)
	}
	return &ReorderResult{Moved: moved}, nil
}

func (rs *RPCServer) taskList(_ context.Context) (*ListTasksResult, error) {
	tasks := rs.manager.GetTasks()
	out := make([]*TaskResult, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResult(t))
	}
	return &ListTasksResult{Tasks: out}, nil
}

func (rs *RPCServer) taskFlush(_ context.Context) (*EmptyResult, error) {
	if err := rs.manager.Flush(); err != nil {
		return nil, rpcError(err)
	}
	return &EmptyResult{}, nil
}

// Notifier returns the push notifier for reminder broadcasts.
func (rs *RPCServer) Notifier() *RPCNotifier {
	return rs.notifier
}

// Handler returns the authenticated HTTP handler for the endpoint.
func (rs *RPCServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/jsonrpc", requireToken(rs.secret, rs.bridge))
	mux.Handle("/ws", requireToken(rs.secret, http.HandlerFunc(rs.handleWS)))
	return mux
}

// Start serves the endpoint and blocks until shutdown.
func (rs *RPCServer) Start() error {
	rs.mu.Lock()
	rs.server = &http.Server{
		Addr:    rs.addr,
		Handler: rs.Handler(),
	}
	srv := rs.server
	rs.mu.Unlock()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server and closes the jrpc2 bridge.
func (rs *RPCServer) Shutdown(ctx context.Context) error {
	rs.mu.Lock()
	srv := rs.server
	rs.server = nil
	rs.mu.Unlock()

	rs.bridge.Close()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
