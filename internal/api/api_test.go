package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"testing"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/internal/server"
	"github.com/taskbell/taskbell/pkg/belllib"
)

type memBlob struct {
	data []byte
}

func (b *memBlob) Load() ([]byte, error) { return b.data, nil }
func (b *memBlob) Save(p []byte) error {
	b.data = append([]byte(nil), p...)
	return nil
}
func (b *memBlob) Close() error { return nil }

func newTestApi(t *testing.T) *Api {
	t.Helper()
	l := log.New(io.Discard, "", 0)
	m, err := belllib.InitManager(&memBlob{}, l)
	if err != nil {
		t.Fatalf("init manager: %v", err)
	}
	a, err := NewApi(l, m, "1.0.0")
	if err != nil {
		t.Fatalf("new api: %v", err)
	}
	return a
}

func marshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestCreateHandler(t *testing.T) {
	a := newTestApi(t)
	utype, resp, err := a.createHandler(nil, nil, marshal(t, common.CreateParams{
		Title:           "Pay bills",
		Description:     "water and power",
		IntervalMinutes: 30,
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if utype != common.UPDATE_CREATE {
		t.Fatalf("expected create update type, got %s", utype)
	}
	cr, ok := resp.(*common.CreateResponse)
	if !ok || cr.Task == nil {
		t.Fatalf("expected create response with task, got %v", resp)
	}
	if cr.Task.Title != "Pay bills" || cr.Task.IntervalMinutes != 30 {
		t.Fatalf("unexpected task: %+v", cr.Task)
	}
	if _, err := a.manager.GetTask(cr.Task.ID); err != nil {
		t.Fatalf("task not stored: %v", err)
	}
}

func TestCreateHandlerEmptyTitle(t *testing.T) {
	a := newTestApi(t)
	_, _, err := a.createHandler(nil, nil, marshal(t, common.CreateParams{Title: "  "}))
	if !errors.Is(err, belllib.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestCreateHandlerBadJSON(t *testing.T) {
	a := newTestApi(t)
	_, _, err := a.createHandler(nil, nil, json.RawMessage(`{oops`))
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestUpdateHandler(t *testing.T) {
	a := newTestApi(t)
	task, err := a.manager.CreateTask("Old", "", 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, resp, err := a.updateHandler(nil, nil, marshal(t, common.UpdateParams{
		TaskId:          task.ID,
		Title:           "New",
		IntervalMinutes: 10,
	}))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	ur := resp.(*common.UpdateResponse)
	if ur.Task.Title != "New" || ur.Task.IntervalMinutes != 10 {
		t.Fatalf("unexpected task: %+v", ur.Task)
	}
}

func TestUpdateHandlerMissingId(t *testing.T) {
	a := newTestApi(t)
	_, _, err := a.updateHandler(nil, nil, marshal(t, common.UpdateParams{Title: "x"}))
	if err == nil {
		t.Fatal("expected error for missing task_id")
	}
}

func TestUpdateHandlerNotFound(t *testing.T) {
	a := newTestApi(t)
	_, _, err := a.updateHandler(nil, nil, marshal(t, common.UpdateParams{
		TaskId: "task_missing",
		Title:  "x",
	}))
	if !errors.Is(err, belllib.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteHandler(t *testing.T) {
	a := newTestApi(t)
	task, _ := a.manager.CreateTask("Doomed", "", 5, nil)
	_, _, err := a.deleteHandler(nil, nil, marshal(t, common.DeleteParams{TaskId: task.ID}))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.manager.GetTask(task.ID); !errors.Is(err, belllib.ErrTaskNotFound) {
		t.Fatal("expected task removed")
	}
}

func TestReorderHandler(t *testing.T) {
	a := newTestApi(t)
	x, _ := a.manager.CreateTask("A", "", 5, nil)
	y, _ := a.manager.CreateTask("B", "", 5, nil)
	_, _ = a.manager.CreateTask("C", "", 5, nil)

	_, resp, err := a.reorderHandler(nil, nil, marshal(t, common.ReorderParams{
		MovedId:  x.ID,
		TargetId: y.ID,
	}))
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	rr := resp.(*common.ReorderResponse)
	if !rr.Moved {
		t.Fatal("expected moved true")
	}
	tasks := a.manager.GetTasks()
	if tasks[0].ID != y.ID || tasks[1].ID != x.ID {
		t.Fatalf("expected order [B A C], got %v", tasks)
	}
}

func TestReorderHandlerNoop(t *testing.T) {
	a := newTestApi(t)
	x, _ := a.manager.CreateTask("A", "", 5, nil)
	_, resp, err := a.reorderHandler(nil, nil, marshal(t, common.ReorderParams{
		MovedId:  x.ID,
		TargetId: x.ID,
	}))
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if resp.(*common.ReorderResponse).Moved {
		t.Fatal("expected moved false for equal ids")
	}
}

func TestListHandlerOrder(t *testing.T) {
	a := newTestApi(t)
	_, _ = a.manager.CreateTask("First", "", 5, nil)
	_, _ = a.manager.CreateTask("Second", "", 5, nil)

	_, resp, err := a.listHandler(nil, nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lr := resp.(*common.ListResponse)
	if len(lr.Tasks) != 2 || lr.Tasks[0].Title != "First" || lr.Tasks[1].Title != "Second" {
		t.Fatalf("expected display order, got %+v", lr.Tasks)
	}
}

func TestFlushHandler(t *testing.T) {
	a := newTestApi(t)
	_, _ = a.manager.CreateTask("A", "", 5, nil)
	_, _, err := a.flushHandler(nil, nil, nil)
	if err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := len(a.manager.GetTasks()); got != 0 {
		t.Fatalf("expected empty store, got %d tasks", got)
	}
}

func TestAttachHandlerAllTasks(t *testing.T) {
	a := newTestApi(t)
	pool := server.NewPool(nil)
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	_, resp, err := a.attachHandler(server.NewSyncConn(c1), pool, nil)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if resp.(*common.AttachResponse).TaskId != "" {
		t.Fatal("expected all-tasks attach")
	}
	if pool.Watchers("") != 1 {
		t.Fatal("expected watcher registered")
	}
}

func TestAttachHandlerUnknownTask(t *testing.T) {
	a := newTestApi(t)
	pool := server.NewPool(nil)
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	_, _, err := a.attachHandler(server.NewSyncConn(c1), pool, marshal(t, common.AttachParams{TaskId: "task_missing"}))
	if !errors.Is(err, belllib.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestVersionHandler(t *testing.T) {
	a := newTestApi(t)
	utype, resp, err := a.versionHandler(nil, nil, nil)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if utype != common.UPDATE_VERSION {
		t.Fatalf("expected version update type, got %s", utype)
	}
	if resp.(*common.VersionResponse).Version != "1.0.0" {
		t.Fatalf("unexpected version: %+v", resp)
	}
}
