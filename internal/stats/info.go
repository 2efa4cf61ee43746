package stats

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/mem"
)

// Report formats an INFO-style text block: one "# Section" header per
// category followed by "key:value" lines, in the conventional Redis
// INFO layout.
func Report(c *Counters) string {
	numClients := c.ConnectedClients()
	var b strings.Builder

	fmt.Fprintf(&b, "# Server\r\n")
	fmt.Fprintf(&b, "literedis_version:1.0.0\r\n")
	fmt.Fprintf(&b, "uptime_in_seconds:%d\r\n", c.UptimeSeconds())

	fmt.Fprintf(&b, "# Clients\r\n")
	fmt.Fprintf(&b, "connected_clients:%d\r\n", numClients)

	fmt.Fprintf(&b, "# Memory\r\n")
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(&b, "total_system_memory:%d\r\n", vm.Total)
		fmt.Fprintf(&b, "used_system_memory:%d\r\n", vm.Used)
	} else {
		fmt.Fprintf(&b, "total_system_memory:unknown\r\n")
	}

	fmt.Fprintf(&b, "# Persistence\r\n")
	fmt.Fprintf(&b, "rdb_saves:%d\r\n", c.RDBSaves)
	fmt.Fprintf(&b, "aof_records_replayed:%d\r\n", c.AOFRecordsReplayed)
	fmt.Fprintf(&b, "aof_write_errors:%d\r\n", c.AOFWriteErrors)

	fmt.Fprintf(&b, "# Stats\r\n")
	fmt.Fprintf(&b, "total_connections_received:%d\r\n", c.ConnectionsTotal)
	fmt.Fprintf(&b, "total_commands_processed:%d\r\n", c.CommandsProcessed)
	fmt.Fprintf(&b, "expired_keys:%d\r\n", c.ExpiredKeys)

	return b.String()
}
