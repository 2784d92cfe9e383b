package app

import (
	"context"

	"github.com/alexandroaldente/events-bot/internal/clock"
	"github.com/alexandroaldente/events-bot/internal/domain"
)

type IdentityRepository interface {
	UpsertUser(ctx context.Context, externalKey, displayName, handle string) (int64, error)
}

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSlotDetails(ctx context.Context, slotID int64) (domain.SlotDetails, error)
	TakeSeat(ctx context.Context, slotID int64) (bool, error)
	HasRegistration(ctx context.Context, userID, slotID int64) (bool, error)
	CreateRegistration(ctx context.Context, reg domain.Registration) error
}

// ReservationService is the reservation engine. Capacity is enforced by the
// store's conditional increment and the (user, slot) unique constraint, not
// by in-process locking, so any number of handlers and processes can call
// Reserve concurrently.
type ReservationService struct {
	reservations ReservationRepository
	identity     IdentityRepository
	clock        clock.Clock
}

func NewReservationService(reservations ReservationRepository, identity IdentityRepository, clk clock.Clock) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		identity:     identity,
		clock:        clk,
	}
}

type ReserveInput struct {
	ExternalKey string
	DisplayName string
	Handle      string
	SlotID      int64
}

// Reserve attempts to take one seat in the slot for the user. Domain
// outcomes (confirmed, already registered, full, not found) are values; a
// non-nil error means the attempt did not run to completion and is safe to
// retry in full.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (domain.ReserveResult, error) {
	if in.SlotID <= 0 {
		return domain.ReserveResult{Status: domain.ReserveSlotNotFound}, nil
	}

	if _, err := s.reservations.GetSlotDetails(ctx, in.SlotID); err != nil {
		if err == domain.ErrSlotNotFound {
			return domain.ReserveResult{Status: domain.ReserveSlotNotFound}, nil
		}
		return domain.ReserveResult{}, err
	}

	// The upsert runs outside the reservation transaction: it is
	// independently idempotent and stands even when the reservation itself
	// is rejected or rolled back.
	userID, err := s.identity.UpsertUser(ctx, in.ExternalKey, in.DisplayName, in.Handle)
	if err != nil {
		return domain.ReserveResult{}, err
	}

	var details domain.SlotDetails
	err = s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		taken, err := s.reservations.TakeSeat(txCtx, in.SlotID)
		if err != nil {
			return err
		}
		if !taken {
			// A refused increment means the slot is at capacity, but a user
			// who already holds one of those seats must still hear
			// "already registered", not "full".
			registered, err := s.reservations.HasRegistration(txCtx, userID, in.SlotID)
			if err != nil {
				return err
			}
			if registered {
				return domain.ErrAlreadyRegistered
			}
			return domain.ErrSlotFull
		}

		reg := domain.Registration{
			UserID:    userID,
			SlotID:    in.SlotID,
			CreatedAt: s.clock.Now(),
		}
		// A duplicate pair rolls back the whole transaction, which also
		// reverses the seat increment above.
		if err := s.reservations.CreateRegistration(txCtx, reg); err != nil {
			return err
		}

		details, err = s.reservations.GetSlotDetails(txCtx, in.SlotID)
		return err
	})

	switch err {
	case nil:
		return domain.ReserveResult{Status: domain.ReserveConfirmed, Slot: details}, nil
	case domain.ErrSlotFull:
		return domain.ReserveResult{Status: domain.ReserveSlotFull}, nil
	case domain.ErrAlreadyRegistered:
		return domain.ReserveResult{Status: domain.ReserveAlreadyRegistered}, nil
	case domain.ErrSlotNotFound:
		return domain.ReserveResult{Status: domain.ReserveSlotNotFound}, nil
	default:
		return domain.ReserveResult{}, err
	}
}
