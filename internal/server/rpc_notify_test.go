package server

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/taskbell/taskbell/pkg/belllib"
)

func TestRPCNotifierRegisterUnregister(t *testing.T) {
	n := NewRPCNotifier(nil)
	srv := jrpc2.NewServer(handler.Map{}, &jrpc2.ServerOptions{AllowPush: true})
	n.Register(srv)
	if n.Count() != 1 {
		t.Fatalf("expected 1 registered server, got %d", n.Count())
	}
	n.Unregister(srv)
	if n.Count() != 0 {
		t.Fatalf("expected 0 registered servers, got %d", n.Count())
	}
}

func TestRPCNotifierBroadcastReminder(t *testing.T) {
	srvConn, cliConn := net.Pipe()

	srv := jrpc2.NewServer(handler.Map{}, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(channel.Line(srvConn, srvConn))
	defer srv.Stop()

	got := make(chan *jrpc2.Request, 1)
	cli := jrpc2.NewClient(channel.Line(cliConn, cliConn), &jrpc2.ClientOptions{
		OnNotify: func(req *jrpc2.Request) {
			got <- req
		},
	})
	defer cli.Close()

	n := NewRPCNotifier(testLogger())
	n.Register(srv)

	task := belllib.Task{ID: "task_1", Title: "Pay bills", Description: "water"}
	n.BroadcastReminder(task, 1700000000)

	select {
	case req := <-got:
		if req.Method() != reminderMethod {
			t.Fatalf("expected %s notification, got %s", reminderMethod, req.Method())
		}
		var p ReminderNotification
		if err := req.UnmarshalParams(&p); err != nil {
			t.Fatalf("unmarshal params: %v", err)
		}
		if p.ID != "task_1" || p.Title != "Pay bills" || p.FiredAt != 1700000000 {
			t.Fatalf("unexpected payload: %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestRPCNotifierDropsDeadServer(t *testing.T) {
	srvConn, cliConn := net.Pipe()

	srv := jrpc2.NewServer(handler.Map{}, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(channel.Line(srvConn, srvConn))

	n := NewRPCNotifier(testLogger())
	n.Register(srv)

	_ = cliConn.Close()
	srv.Stop()
	_ = srv.Wait()

	n.Broadcast(reminderMethod, json.RawMessage(`{}`))
	if n.Count() != 0 {
		t.Fatalf("expected dead server unregistered, got %d", n.Count())
	}
}
