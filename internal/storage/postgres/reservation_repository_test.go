package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/alexandroaldente/events-bot/internal/domain"
	"github.com/alexandroaldente/events-bot/internal/testutil"
)

func TestReservationRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewReservationRepository(pool)
	identity := NewIdentityRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	starts := func() time.Time {
		return time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	}

	t.Run("TakeSeat increments only while below capacity", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Talk", "Hall A")
		slotID := testutil.InsertSlot(t, ctx, pool, eventID, starts(), 2)

		for i := 0; i < 2; i++ {
			taken, err := repo.TakeSeat(ctx, slotID)
			if err != nil {
				t.Fatalf("take seat %d: %v", i, err)
			}
			if !taken {
				t.Fatalf("expected seat %d to be taken", i)
			}
		}

		taken, err := repo.TakeSeat(ctx, slotID)
		if err != nil {
			t.Fatalf("take seat at capacity: %v", err)
		}
		if taken {
			t.Fatalf("expected no seat at capacity")
		}
		if got := testutil.SlotTaken(t, ctx, pool, slotID); got != 2 {
			t.Fatalf("expected taken 2, got %d", got)
		}
	})

	t.Run("TakeSeat on a missing slot reports false", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		taken, err := repo.TakeSeat(ctx, 999999)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if taken {
			t.Fatalf("expected false for missing slot")
		}
	})

	t.Run("CreateRegistration maps the duplicate pair to ErrAlreadyRegistered", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Talk", "Hall A")
		slotID := testutil.InsertSlot(t, ctx, pool, eventID, starts(), 5)
		userID, err := identity.UpsertUser(ctx, "tg-1", "Ann", "ann")
		if err != nil {
			t.Fatalf("upsert user: %v", err)
		}

		reg := domain.Registration{UserID: userID, SlotID: slotID, CreatedAt: time.Now().UTC()}
		if err := repo.CreateRegistration(ctx, reg); err != nil {
			t.Fatalf("first registration: %v", err)
		}
		if err := repo.CreateRegistration(ctx, reg); err != domain.ErrAlreadyRegistered {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("HasRegistration reports only the exact pair", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Talk", "Hall A")
		slotID := testutil.InsertSlot(t, ctx, pool, eventID, starts(), 5)
		otherSlotID := testutil.InsertSlot(t, ctx, pool, eventID, starts().Add(24*time.Hour), 5)
		userID, err := identity.UpsertUser(ctx, "tg-1", "Ann", "ann")
		if err != nil {
			t.Fatalf("upsert user: %v", err)
		}

		reg := domain.Registration{UserID: userID, SlotID: slotID, CreatedAt: time.Now().UTC()}
		if err := repo.CreateRegistration(ctx, reg); err != nil {
			t.Fatalf("registration: %v", err)
		}

		has, err := repo.HasRegistration(ctx, userID, slotID)
		if err != nil {
			t.Fatalf("check pair: %v", err)
		}
		if !has {
			t.Fatalf("expected the registered pair to be found")
		}

		has, err = repo.HasRegistration(ctx, userID, otherSlotID)
		if err != nil {
			t.Fatalf("check other slot: %v", err)
		}
		if has {
			t.Fatalf("did not expect a registration in the other slot")
		}
	})

	t.Run("rolling back a transaction reverses the increment", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Talk", "Hall A")
		slotID := testutil.InsertSlot(t, ctx, pool, eventID, starts(), 5)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			taken, err := repo.TakeSeat(txCtx, slotID)
			if err != nil {
				t.Fatalf("take seat in tx: %v", err)
			}
			if !taken {
				t.Fatalf("expected seat in tx")
			}
			return domain.ErrAlreadyRegistered
		})
		if err != domain.ErrAlreadyRegistered {
			t.Fatalf("expected the error back, got %v", err)
		}
		if got := testutil.SlotTaken(t, ctx, pool, slotID); got != 0 {
			t.Fatalf("expected increment reversed, got taken %d", got)
		}
	})

	t.Run("GetSlotDetails inside a tx sees the staged increment", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Talk", "Hall A")
		slotID := testutil.InsertSlot(t, ctx, pool, eventID, starts(), 5)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			if _, err := repo.TakeSeat(txCtx, slotID); err != nil {
				return err
			}
			d, err := repo.GetSlotDetails(txCtx, slotID)
			if err != nil {
				return err
			}
			if d.Taken != 1 {
				t.Fatalf("expected staged taken 1, got %d", d.Taken)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}
		if got := testutil.SlotTaken(t, ctx, pool, slotID); got != 1 {
			t.Fatalf("expected committed taken 1, got %d", got)
		}
	})
}
