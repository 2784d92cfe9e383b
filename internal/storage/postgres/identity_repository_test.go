package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexandroaldente/events-bot/internal/testutil"
)

func TestIdentityRepository_UpsertUser(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewIdentityRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("repeated upserts return the same id and the latest values", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		first, err := repo.UpsertUser(ctx, "tg-100", "A", "a")
		if err != nil {
			t.Fatalf("first upsert: %v", err)
		}
		second, err := repo.UpsertUser(ctx, "tg-100", "B", "b")
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		if first != second {
			t.Fatalf("expected stable id, got %d then %d", first, second)
		}

		var displayName, handle string
		if err := pool.QueryRow(ctx,
			`SELECT display_name, handle FROM users WHERE id = $1`, first,
		).Scan(&displayName, &handle); err != nil {
			t.Fatalf("query user: %v", err)
		}
		if displayName != "B" || handle != "b" {
			t.Fatalf("expected latest values to win, got %q %q", displayName, handle)
		}
	})

	t.Run("concurrent first-time upserts resolve to one row", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		const callers = 8
		ids := make([]int64, callers)
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ids[i], errs[i] = repo.UpsertUser(ctx, "tg-200", fmt.Sprintf("N%d", i), "n")
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			if errs[i] != nil {
				t.Fatalf("caller %d: %v", i, errs[i])
			}
			if ids[i] != ids[0] {
				t.Fatalf("expected a single internal id, got %v", ids)
			}
		}

		var count int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE external_key = 'tg-200'`).Scan(&count); err != nil {
			t.Fatalf("count users: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 user row, got %d", count)
		}
	})
}
