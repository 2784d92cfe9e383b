package postgres

import (
	"context"
	"fmt"

	"github.com/alexandroaldente/events-bot/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepository is the only writer of slots.taken and the owner of
// the registrations table.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// TakeSeat atomically increments taken while it is below capacity. It
// reports false when the slot is at capacity or does not exist; the two
// cases are not distinguished here, callers check existence first.
func (r *ReservationRepository) TakeSeat(ctx context.Context, slotID int64) (bool, error) {
	const stmt = `UPDATE slots SET taken = taken + 1 WHERE id = $1 AND taken < capacity`

	tag, err := r.exec(ctx, stmt, slotID)
	if err != nil {
		return false, fmt.Errorf("take seat: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CreateRegistration inserts the (user, slot) row. A second row for the
// same pair violates the unique constraint and maps to ErrAlreadyRegistered.
func (r *ReservationRepository) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO registrations (user_id, slot_id, created_at)
VALUES ($1, $2, $3)`

	_, err := r.exec(ctx, stmt, reg.UserID, reg.SlotID, reg.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// HasRegistration reports whether the user already holds a seat in the slot.
func (r *ReservationRepository) HasRegistration(ctx context.Context, userID, slotID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND slot_id = $2)`

	var exists bool
	if err := r.queryRow(ctx, query, userID, slotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

func (r *ReservationRepository) GetSlotDetails(ctx context.Context, slotID int64) (domain.SlotDetails, error) {
	d, err := scanSlotDetails(r.queryRow(ctx, slotDetailsQuery, slotID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.SlotDetails{}, domain.ErrSlotNotFound
		}
		return domain.SlotDetails{}, fmt.Errorf("get slot: %w", err)
	}
	return d, nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
