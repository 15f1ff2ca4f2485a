package server

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/taskbell/taskbell/common"
)

func TestIntBytesRoundTrip(t *testing.T) {
	val := uint32(123456)
	b := intToBytes(val)
	if got := bytesToInt(b); got != val {
		t.Fatalf("expected %d, got %d", val, got)
	}
}

func TestReadWrite(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	data := []byte("hello")
	wmu := &sync.Mutex{}
	rmu := &sync.Mutex{}
	go func() {
		_ = write(wmu, c1, data)
	}()
	got, err := read(rmu, c2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("unexpected payload: %s", string(got))
	}
}

func TestReadWriteErrors(t *testing.T) {
	c1, c2 := net.Pipe()
	_ = c2.Close()
	if err := write(&sync.Mutex{}, c1, []byte("hello")); err == nil {
		t.Fatalf("expected write error")
	}
	if _, err := read(&sync.Mutex{}, c1); err == nil {
		t.Fatalf("expected read error")
	}
	_ = c1.Close()
}

func TestReadRejectsOversizedPayload(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	oversizedLength := uint32(common.MaxMessageSize + 1)
	go func() {
		_, _ = c1.Write(intToBytes(oversizedLength))
	}()

	errCh := make(chan error, 1)
	go func() {
		_, err := read(&sync.Mutex{}, c2)
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != ErrMessageTooLarge {
			t.Fatalf("expected ErrMessageTooLarge, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("read did not return")
	}
}

func TestWriteRejectsOversizedPayload(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	big := make([]byte, common.MaxMessageSize+1)
	if err := write(&sync.Mutex{}, c1, big); err != ErrMessageTooLarge {
		t.Fatalf("expected ErrMessageTooLarge, got %v", err)
	}
}

func TestReadPartialHeader(t *testing.T) {
	c1, c2 := net.Pipe()
	go func() {
		_, _ = c1.Write([]byte{1, 2})
		_ = c1.Close()
	}()
	if _, err := read(&sync.Mutex{}, c2); err == nil {
		t.Fatal("expected error on truncated header")
	}
	_ = c2.Close()
}
