package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskbell/taskbell/common"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestHandlerWrapperUnknownMethod(t *testing.T) {
	s := NewServer(testLogger(), nil, 0)
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()
	req, _ := json.Marshal(Request{Method: common.UpdateType("nope")})
	go func() {
		_ = s.handlerWrapper(NewSyncConn(c1), req)
	}()
	respBytes, err := NewSyncConn(c2).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Ok {
		t.Fatalf("expected error response")
	}
}

func TestHandlerWrapperError(t *testing.T) {
	s := NewServer(testLogger(), nil, 0)
	s.RegisterHandler(common.UPDATE_LIST, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		return common.UPDATE_LIST, nil, errors.New("boom")
	})
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()
	req, _ := json.Marshal(Request{Method: common.UPDATE_LIST})
	go func() {
		_ = s.handlerWrapper(NewSyncConn(c1), req)
	}()
	respBytes, err := NewSyncConn(c2).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Ok || resp.Error == "" {
		t.Fatalf("expected error response, got %+v", resp)
	}
}

func TestHandlerWrapperResult(t *testing.T) {
	s := NewServer(testLogger(), nil, 0)
	s.RegisterHandler(common.UPDATE_VERSION, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		return common.UPDATE_VERSION, &common.VersionResponse{Version: "1.2.3"}, nil
	})
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()
	req, _ := json.Marshal(Request{Method: common.UPDATE_VERSION})
	go func() {
		_ = s.handlerWrapper(NewSyncConn(c1), req)
	}()
	respBytes, err := NewSyncConn(c2).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !resp.Ok || resp.Update == nil || resp.Update.Type != common.UPDATE_VERSION {
		t.Fatalf("expected version update, got %+v", resp)
	}
}

func TestServerStartServesSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "test.sock")
	t.Setenv(common.SocketPathEnv, sock)

	s := NewServer(testLogger(), nil, 0)
	s.RegisterHandler(common.UPDATE_VERSION, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		return common.UPDATE_VERSION, &common.VersionResponse{Version: "9.9.9"}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("unix", sock)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	sc := NewSyncConn(conn)
	req, _ := json.Marshal(Request{Method: common.UPDATE_VERSION})
	if err := sc.Write(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	respBytes, err := sc.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Ok {
		t.Fatalf("expected ok response, got %+v", resp)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServerBroadcastToAttachedWatcher(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "test.sock")
	t.Setenv(common.SocketPathEnv, sock)

	s := NewServer(testLogger(), nil, 0)
	s.RegisterHandler(common.UPDATE_ATTACH, func(conn *SyncConn, pool *Pool, body json.RawMessage) (common.UpdateType, any, error) {
		var p common.AttachParams
		_ = json.Unmarshal(body, &p)
		pool.Attach(p.TaskId, conn)
		return common.UPDATE_ATTACH, &common.AttachResponse{TaskId: p.TaskId}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Start(ctx) }()

	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("unix", sock)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	sc := NewSyncConn(conn)
	msg, _ := json.Marshal(common.AttachParams{})
	req, _ := json.Marshal(Request{Method: common.UPDATE_ATTACH, Message: msg})
	if err := sc.Write(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := sc.Read(); err != nil {
		t.Fatalf("read attach ack: %v", err)
	}

	for i := 0; i < 50; i++ {
		if s.Pool().Watchers("") == 1 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	s.Pool().Broadcast("task_1", MakeResult(common.UPDATE_REMINDER, &common.ReminderResponse{FiredAt: 42}))

	respBytes, err := sc.Read()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Ok || resp.Update == nil || resp.Update.Type != common.UPDATE_REMINDER {
		t.Fatalf("expected reminder update, got %+v", resp)
	}
}
