package jobs

import (
	"context"
	"log"
	"time"

	"jobtracker/internal/metrics"
)

// Pinger checks database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DBMonitor periodically probes the database and publishes its availability.
type DBMonitor struct {
	db       Pinger
	interval time.Duration
	timeout  time.Duration
	up       *bool
}

// NewDBMonitor creates a new database monitor.
func NewDBMonitor(database Pinger, interval time.Duration) *DBMonitor {
	return &DBMonitor{
		db:       database,
		interval: interval,
		timeout:  5 * time.Second,
	}
}

// Start begins the background probe loop. It returns when ctx is cancelled.
func (m *DBMonitor) Start(ctx context.Context) {
	log.Printf("Database monitor started (interval: %v)", m.interval)

	// Run immediately on start
	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Database monitor stopped")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check pings once, updates the gauge and logs state transitions.
func (m *DBMonitor) check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.db.Ping(pingCtx)
	up := err == nil
	metrics.SetDatabaseUp(up)

	if m.up == nil || *m.up != up {
		if up {
			log.Println("Database monitor: database is reachable")
		} else {
			log.Printf("Database monitor: database unreachable: %v", err)
		}
	}
	m.up = &up
	return up
}
