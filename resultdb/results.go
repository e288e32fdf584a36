package resultdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"munroaccess.org/internal/logging"
	"munroaccess.org/internal/models"
)

// SaveResult inserts or replaces a single analyzed result.
func (c *Client) SaveResult(ctx context.Context, result models.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.ID(), err)
	}
	_, err = c.DB.ExecContext(ctx,
		"INSERT OR REPLACE INTO results (start_id, target_id, payload, created_at) VALUES (?, ?, ?, ?)",
		result.Start, result.Target, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save result %s: %w", result.ID(), err)
	}
	return nil
}

// BulkInsertResults inserts results in multi-row batches inside a single
// transaction. Existing (start, target) rows are replaced.
func (c *Client) BulkInsertResults(ctx context.Context, results []models.Result) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	batchSize := c.config.GetBulkInsertBatchSize()
	now := time.Now().Unix()

	for offset := 0; offset < len(results); offset += batchSize {
		end := offset + batchSize
		if end > len(results) {
			end = len(results)
		}
		batch := results[offset:end]

		placeholders := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*4)
		for _, result := range batch {
			payload, err := json.Marshal(result)
			if err != nil {
				return fmt.Errorf("failed to encode result %s: %w", result.ID(), err)
			}
			placeholders = append(placeholders, "(?, ?, ?, ?)")
			args = append(args, result.Start, result.Target, string(payload), now)
		}

		query := "INSERT OR REPLACE INTO results (start_id, target_id, payload, created_at) VALUES " +
			strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert result batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}

	if c.config.verbose {
		c.logger.Info("inserted results", slog.Int("count", len(results)))
	}
	return nil
}

// LoadAllResults returns every stored result, ordered by start then target
// so repeated loads see the same sequence.
func (c *Client) LoadAllResults(ctx context.Context) ([]models.Result, error) {
	rows, err := c.DB.QueryContext(ctx,
		"SELECT payload FROM results ORDER BY start_id, target_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "database_rows")

	var results []models.Result
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		var result models.Result
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, fmt.Errorf("failed to decode stored result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// CompletedIDs returns the set of (start, target) pairs already analyzed,
// used to skip finished work when a run is resumed.
func (c *Client) CompletedIDs(ctx context.Context) (map[models.ResultID]bool, error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT start_id, target_id FROM results")
	if err != nil {
		return nil, fmt.Errorf("failed to query completed ids: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "database_rows")

	completed := make(map[models.ResultID]bool)
	for rows.Next() {
		var id models.ResultID
		if err := rows.Scan(&id.Start, &id.Target); err != nil {
			return nil, fmt.Errorf("failed to scan completed id: %w", err)
		}
		completed[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return completed, nil
}
