package model

import "time"

// Snapshot describes a labeled copy of a ledger kept in the archive.
type Snapshot struct {
	CreatedAt time.Time
	Label     string
	ID        int64
	Count     int
}
