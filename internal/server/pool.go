package server

import (
	"log"
	"sync"
)

// Pool tracks connections attached to reminder broadcasts. Watchers
// subscribe to a single task id, or to the empty id to receive every
// reminder. Connections that fail a write are dropped from the pool.
type Pool struct {
	mu       sync.RWMutex
	watchers map[string][]*SyncConn
	l        *log.Logger
}

func NewPool(l *log.Logger) *Pool {
	if l == nil {
		l = log.Default()
	}
	return &Pool{
		watchers: make(map[string][]*SyncConn),
		l:        l,
	}
}

// Attach subscribes a connection to reminders for taskID ("" for all).
func (p *Pool) Attach(taskID string, sconn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watchers[taskID] = append(p.watchers[taskID], sconn)
}

// Detach removes a connection from every subscription list. Called when
// the connection's read loop exits.
func (p *Pool) Detach(sconn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, conns := range p.watchers {
		p.watchers[id] = removeConn(conns, sconn)
		if len(p.watchers[id]) == 0 {
			delete(p.watchers, id)
		}
	}
}

// Broadcast frames and writes data to every watcher of taskID and every
// watcher of all tasks. Writes go through the connection's write lock so
// concurrent broadcasts never interleave with each other or with request
// responses. Dead connections are closed and pruned.
func (p *Pool) Broadcast(taskID string, data []byte) {
	p.mu.RLock()
	targets := make([]*SyncConn, 0, len(p.watchers[taskID])+len(p.watchers[""]))
	targets = append(targets, p.watchers[taskID]...)
	if taskID != "" {
		targets = append(targets, p.watchers[""]...)
	}
	p.mu.RUnlock()

	var dead []*SyncConn
	for _, sconn := range targets {
		if err := sconn.Write(data); err != nil {
			dead = append(dead, sconn)
		}
	}
	for _, sconn := range dead {
		p.l.Println("pool: dropping dead watcher:", sconn.Conn.RemoteAddr())
		_ = sconn.Conn.Close()
		p.Detach(sconn)
	}
}

// Watchers reports how many connections are subscribed to taskID.
func (p *Pool) Watchers(taskID string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.watchers[taskID])
}

func removeConn(conns []*SyncConn, target *SyncConn) []*SyncConn {
	for i, c := range conns {
		if c == target {
			conns[i] = conns[len(conns)-1]
			return conns[:len(conns)-1]
		}
	}
	return conns
}
