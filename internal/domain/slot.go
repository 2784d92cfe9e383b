package domain

import "time"

// Slot is a bookable time instance of an event with a fixed seat capacity.
// Taken is mutated only by the reservation engine's conditional increment.
type Slot struct {
	ID       int64
	EventID  int64
	StartsAt time.Time
	Capacity int
	Taken    int
}

// Remaining returns the number of free seats.
func (s Slot) Remaining() int {
	return s.Capacity - s.Taken
}

// SlotDetails is a slot joined with its event, as shown on the confirm
// screen and in reservation outcomes.
type SlotDetails struct {
	Slot
	EventTitle    string
	EventLocation string
}
