// Package stats aggregates the runtime counters and host metrics the
// INFO command reports.
package stats

import (
	"sync/atomic"
	"time"
)

// Counters are mutated only while the store's coarse lock is held (every
// command executes under it), so plain int64 fields need no atomics —
// except connectedClients, which the accept loop updates outside that
// lock.
type Counters struct {
	StartTime          time.Time
	CommandsProcessed  int64
	ExpiredKeys        int64
	AOFRecordsReplayed int64
	AOFWriteErrors     int64
	RDBSaves           int64
	ConnectionsTotal   int64

	connectedClients int64
}

func New() *Counters {
	return &Counters{StartTime: time.Now()}
}

func (c *Counters) UptimeSeconds() int64 {
	return int64(time.Since(c.StartTime).Seconds())
}

func (c *Counters) ClientConnected()    { atomic.AddInt64(&c.connectedClients, 1) }
func (c *Counters) ClientDisconnected() { atomic.AddInt64(&c.connectedClients, -1) }
func (c *Counters) ConnectedClients() int64 {
	return atomic.LoadInt64(&c.connectedClients)
}
