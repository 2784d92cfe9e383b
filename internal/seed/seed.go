// Package seed provides demo catalog data so a fresh install has something
// to book. It is a collaborator of the reservation core, not part of it.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Demo inserts two demo events with four future slots. It is a no-op when
// the events table already has rows.
func Demo(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return nil
	}

	const insertEvent = `
INSERT INTO events (title, description, location)
VALUES ($1, $2, $3)
RETURNING id`

	var talkID, workshopID int64
	if err := pool.QueryRow(ctx, insertEvent,
		"Talk: Design Without Pain",
		"Small practices for big tasks",
		"Technopark, Hall A",
	).Scan(&talkID); err != nil {
		return fmt.Errorf("insert demo event: %w", err)
	}
	if err := pool.QueryRow(ctx, insertEvent,
		"Workshop: AI in the Daily Workflow",
		"Prompt engineering for designers",
		"Station Coworking",
	).Scan(&workshopID); err != nil {
		return fmt.Errorf("insert demo event: %w", err)
	}

	const insertSlot = `
INSERT INTO slots (event_id, starts_at, capacity)
VALUES ($1, $2, $3)`

	now := time.Now().UTC()
	slots := []struct {
		eventID  int64
		startsAt time.Time
		capacity int
	}{
		{talkID, now.Add(24 * time.Hour), 30},
		{talkID, now.Add(48 * time.Hour), 30},
		{workshopID, now.Add(24 * time.Hour), 15},
		{workshopID, now.Add(72 * time.Hour), 15},
	}
	for _, s := range slots {
		if _, err := pool.Exec(ctx, insertSlot, s.eventID, s.startsAt, s.capacity); err != nil {
			return fmt.Errorf("insert demo slot: %w", err)
		}
	}
	return nil
}
