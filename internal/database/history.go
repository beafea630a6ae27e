package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dareloop/dareloop/internal/cache"
)

// InsertTaskHistoryBatch writes a drained batch of draw records into the
// task_history table in a single transaction.
func InsertTaskHistoryBatch(ctx context.Context, records []cache.TaskHistoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		INSERT INTO task_history (player_id, player_name, task_text, category, points, drawn_at)
		VALUES ($1, $2, $3, $4, $5, to_timestamp($6 / 1000.0))
	`
	for _, r := range records {
		if _, err := tx.Exec(ctx, q, r.PlayerID, r.Name, r.TaskText, r.Category, r.Points, r.Timestamp); err != nil {
			return fmt.Errorf("insert task_history row: %w", err)
		}
	}
	return tx.Commit(ctx)
}
