package bellcli

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/pkg/belllib"
)

// serveOne reads one request frame from conn and responds with resp.
func serveOne(t *testing.T, conn net.Conn, handle func(req Request) Response) {
	t.Helper()
	go func() {
		buf, err := read(conn)
		if err != nil {
			return
		}
		var req Request
		if err := json.Unmarshal(buf, &req); err != nil {
			return
		}
		b, _ := json.Marshal(handle(req))
		_ = write(conn, b)
	}()
}

func okUpdate(t *testing.T, utype common.UpdateType, msg any) Response {
	t.Helper()
	b, _ := json.Marshal(msg)
	return Response{
		Ok:     true,
		Update: &Update{Type: utype, Message: b},
	}
}

func TestClientCreate(t *testing.T) {
	cliConn, srvConn := net.Pipe()
	defer cliConn.Close()
	defer srvConn.Close()
	c := NewClientForTesting(cliConn)

	serveOne(t, srvConn, func(req Request) Response {
		if req.Method != common.UPDATE_CREATE {
			t.Errorf("expected create method, got %s", req.Method)
		}
		return okUpdate(t, common.UPDATE_CREATE, &common.CreateResponse{
			Task: &belllib.Task{ID: "task_1", Title: "Pay bills", IntervalMinutes: 30},
		})
	})

	resp, err := c.Create("Pay bills", 30, &CreateOpts{Description: "water"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Task == nil || resp.Task.ID != "task_1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientList(t *testing.T) {
	cliConn, srvConn := net.Pipe()
	defer cliConn.Close()
	defer srvConn.Close()
	c := NewClientForTesting(cliConn)

	serveOne(t, srvConn, func(req Request) Response {
		return okUpdate(t, common.UPDATE_LIST, &common.ListResponse{
			Tasks: []belllib.Task{
				{ID: "task_1", Title: "A"},
				{ID: "task_2", Title: "B"},
			},
		})
	})

	resp, err := c.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Tasks) != 2 || resp.Tasks[0].Title != "A" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientErrorResponse(t *testing.T) {
	cliConn, srvConn := net.Pipe()
	defer cliConn.Close()
	defer srvConn.Close()
	c := NewClientForTesting(cliConn)

	serveOne(t, srvConn, func(req Request) Response {
		return Response{Ok: false, Error: "task not found"}
	})

	if _, err := c.Delete("task_missing"); err == nil || err.Error() != "task not found" {
		t.Fatalf("expected daemon error surfaced, got %v", err)
	}
}

func TestClientVersion(t *testing.T) {
	cliConn, srvConn := net.Pipe()
	defer cliConn.Close()
	defer srvConn.Close()
	c := NewClientForTesting(cliConn)

	serveOne(t, srvConn, func(req Request) Response {
		return okUpdate(t, common.UPDATE_VERSION, &common.VersionResponse{Version: "1.0.0"})
	})

	resp, err := c.Version()
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if resp.Version != "1.0.0" {
		t.Fatalf("unexpected version: %+v", resp)
	}
}

func TestListenDispatchesReminders(t *testing.T) {
	cliConn, srvConn := net.Pipe()
	defer srvConn.Close()
	c := NewClientForTesting(cliConn)

	got := make(chan *common.ReminderResponse, 1)
	c.OnReminder("", func(r *common.ReminderResponse) error {
		got <- r
		return ErrDisconnect
	})

	done := make(chan error, 1)
	go func() { done <- c.Listen() }()

	push := okUpdate(t, common.UPDATE_REMINDER, &common.ReminderResponse{
		Task:    &belllib.Task{ID: "task_1", Title: "Stretch"},
		FiredAt: 1700000000,
	})
	b, _ := json.Marshal(push)
	if err := write(srvConn, b); err != nil {
		t.Fatalf("write push: %v", err)
	}

	select {
	case r := <-got:
		if r.Task.ID != "task_1" || r.FiredAt != 1700000000 {
			t.Fatalf("unexpected reminder: %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reminder not dispatched")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Listen returned error after ErrDisconnect: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not stop on ErrDisconnect")
	}
}

func TestReminderHandlerFiltersTask(t *testing.T) {
	var calls int
	h := NewReminderHandler("task_2", func(r *common.ReminderResponse) error {
		calls++
		return nil
	})

	mismatch, _ := json.Marshal(&common.ReminderResponse{Task: &belllib.Task{ID: "task_1"}})
	if err := h.Handle(mismatch); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatal("handler should skip other tasks")
	}

	match, _ := json.Marshal(&common.ReminderResponse{Task: &belllib.Task{ID: "task_2"}})
	if err := h.Handle(match); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatal("handler should fire for its task")
	}
}

func TestBufioRoundTrip(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	go func() {
		_ = write(c1, []byte("payload"))
	}()
	got, err := read(c2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestReadRejectsOversized(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	go func() {
		_, _ = c1.Write(intToBytes(uint32(common.MaxMessageSize + 1)))
	}()
	if _, err := read(c2); err == nil {
		t.Fatal("expected oversize error")
	}
}
