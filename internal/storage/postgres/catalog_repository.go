package postgres

import (
	"context"
	"fmt"

	"github.com/alexandroaldente/events-bot/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository reads events and slots. It never writes; seat counts are
// owned by ReservationRepository.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, title, description, location
FROM events
ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var description, location *string
		if err := rows.Scan(&e.ID, &e.Title, &description, &location); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if description != nil {
			e.Description = *description
		}
		if location != nil {
			e.Location = *location
		}
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

// ListSlots returns the slots of an event ordered by start time. An unknown
// event id yields an empty slice, not an error.
func (r *CatalogRepository) ListSlots(ctx context.Context, eventID int64) ([]domain.Slot, error) {
	const query = `
SELECT id, event_id, starts_at, capacity, taken
FROM slots
WHERE event_id = $1
ORDER BY starts_at ASC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.EventID, &s.StartsAt, &s.Capacity, &s.Taken); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate slots: %w", rows.Err())
	}
	return slots, nil
}

func (r *CatalogRepository) GetSlotDetails(ctx context.Context, slotID int64) (domain.SlotDetails, error) {
	d, err := scanSlotDetails(r.pool.QueryRow(ctx, slotDetailsQuery, slotID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.SlotDetails{}, domain.ErrSlotNotFound
		}
		return domain.SlotDetails{}, fmt.Errorf("get slot: %w", err)
	}
	return d, nil
}

const slotDetailsQuery = `
SELECT s.id, s.event_id, s.starts_at, s.capacity, s.taken, e.title, e.location
FROM slots s
JOIN events e ON e.id = s.event_id
WHERE s.id = $1`

func scanSlotDetails(row pgx.Row) (domain.SlotDetails, error) {
	var d domain.SlotDetails
	var location *string
	err := row.Scan(&d.ID, &d.EventID, &d.StartsAt, &d.Capacity, &d.Taken, &d.EventTitle, &location)
	if err != nil {
		return domain.SlotDetails{}, err
	}
	if location != nil {
		d.EventLocation = *location
	}
	return d, nil
}
