package audit

import (
	"context"
	"time"
)

type Entry struct {
	ID        int64
	Admin     string
	Resource  string
	Message   string
	CreatedAt time.Time
}

type Repository interface {
	Append(ctx context.Context, entry *Entry) error

	// PruneBefore deletes entries created before cutoff and returns how many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
