package domain

type ReserveStatus string

const (
	ReserveConfirmed         ReserveStatus = "confirmed"
	ReserveAlreadyRegistered ReserveStatus = "already_registered"
	ReserveSlotFull          ReserveStatus = "slot_full"
	ReserveSlotNotFound      ReserveStatus = "slot_not_found"
)

// ReserveResult is the discriminated outcome of a reservation attempt.
// Slot carries the post-reservation details and is set only for
// ReserveConfirmed.
type ReserveResult struct {
	Status ReserveStatus
	Slot   SlotDetails
}
