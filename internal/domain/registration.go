package domain

import "time"

// Registration is a confirmed binding of one user to one slot. The
// (UserID, SlotID) pair is unique; rows are never updated or deleted.
type Registration struct {
	ID        int64
	UserID    int64
	SlotID    int64
	CreatedAt time.Time
}
