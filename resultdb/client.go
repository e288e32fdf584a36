package resultdb

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// Client wraps the SQLite database holding analyzed results.
type Client struct {
	DB     *sql.DB
	config Config
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS results (
    start_id    TEXT NOT NULL,
    target_id   TEXT NOT NULL,
    payload     TEXT NOT NULL,
    created_at  INTEGER NOT NULL,
    PRIMARY KEY (start_id, target_id)
);

CREATE INDEX IF NOT EXISTS idx_results_target ON results (target_id);
`

// NewClient opens (creating if necessary) the database at the configured
// path and applies the schema.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", config.DBPath, err)
	}

	// A single writer keeps "database is locked" errors out of the bulk
	// insert path.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		DB:     db,
		config: config,
		logger: logger.With(slog.String("component", "resultdb")),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// TableCounts reports row counts per table, for diagnostics.
func (c *Client) TableCounts() (map[string]int, error) {
	counts := make(map[string]int)
	var count int
	if err := c.DB.QueryRow("SELECT COUNT(*) FROM results").Scan(&count); err != nil {
		return nil, err
	}
	counts["results"] = count
	return counts, nil
}
