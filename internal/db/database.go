package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/calvinwijaya/blackjack/internal/game"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Database struct {
	db     *sql.DB
	driver string
}

// RoundRecord is one completed round in the ledger
type RoundRecord struct {
	ID          string           `json:"id"`
	SessionID   string           `json:"sessionId"`
	Round       int              `json:"round"`
	Kind        game.OutcomeKind `json:"kind"`
	Reason      game.Reason      `json:"reason"`
	PlayerScore int              `json:"playerScore"`
	DealerScore int              `json:"dealerScore"`
	Hits        int              `json:"hits"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type Stats struct {
	Rounds     int       `json:"rounds"`
	PlayerWins int       `json:"playerWins"`
	DealerWins int       `json:"dealerWins"`
	Pushes     int       `json:"pushes"`
	Blackjacks int       `json:"blackjacks"`
	LastPlayed time.Time `json:"lastPlayed,omitempty"`
}

// WinRate returns the share of rounds won by the player, in percent
func (s Stats) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.PlayerWins) / float64(s.Rounds) * 100
}

// NewDatabase opens the ledger with driver ("sqlite3" or "postgres") and
// creates the tables if needed.
func NewDatabase(driver, dsn string) (*Database, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows one writer at a time
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}

	d := &Database{db: db, driver: driver}
	if err := d.initTables(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// initTables creates the necessary tables if they don't exist
func (d *Database) initTables() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			kind TEXT NOT NULL,
			reason TEXT NOT NULL,
			player_score INTEGER NOT NULL,
			dealer_score INTEGER NOT NULL,
			hits INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating rounds table: %w", err)
	}

	_, err = d.db.Exec(`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds (session_id)`)
	if err != nil {
		return fmt.Errorf("error creating rounds index: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres
func (d *Database) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveRound stores a completed round
func (d *Database) SaveRound(ctx context.Context, r RoundRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := d.db.ExecContext(ctx, d.rebind(`
		INSERT INTO rounds (id, session_id, round, kind, reason, player_score, dealer_score, hits, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		r.ID, r.SessionID, r.Round, string(r.Kind), string(r.Reason),
		r.PlayerScore, r.DealerScore, r.Hits, r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("error saving round: %w", err)
	}
	return nil
}

// GetSessionRounds returns the rounds of a session, most recent first
func (d *Database) GetSessionRounds(ctx context.Context, sessionID string) ([]RoundRecord, error) {
	rows, err := d.db.QueryContext(ctx, d.rebind(`
		SELECT id, session_id, round, kind, reason, player_score, dealer_score, hits, created_at
		FROM rounds WHERE session_id = ?
		ORDER BY round DESC
	`), sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := []RoundRecord{}
	for rows.Next() {
		var r RoundRecord
		var kind, reason string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Round, &kind, &reason,
			&r.PlayerScore, &r.DealerScore, &r.Hits, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Kind = game.OutcomeKind(kind)
		r.Reason = game.Reason(reason)
		rounds = append(rounds, r)
	}

	return rounds, rows.Err()
}

// GetStats aggregates outcomes for one session, or for every session when
// sessionID is empty.
func (d *Database) GetStats(ctx context.Context, sessionID string) (*Stats, error) {
	where, args := "", []any{}
	if sessionID != "" {
		where, args = "WHERE session_id = ?", append(args, sessionID)
	}

	rows, err := d.db.QueryContext(ctx, d.rebind(
		"SELECT kind, reason, COUNT(*) FROM rounds "+where+" GROUP BY kind, reason"), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var kind, reason string
		var count int
		if err := rows.Scan(&kind, &reason, &count); err != nil {
			return nil, err
		}

		stats.Rounds += count
		switch game.OutcomeKind(kind) {
		case game.PlayerWins:
			stats.PlayerWins += count
		case game.DealerWins:
			stats.DealerWins += count
		case game.Push:
			stats.Pushes += count
		}
		if game.Reason(reason) == game.ReasonPlayerBlackjack {
			stats.Blackjacks += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = d.db.QueryRowContext(ctx, d.rebind(
		"SELECT created_at FROM rounds "+where+" ORDER BY created_at DESC LIMIT 1"), args...).Scan(&stats.LastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error getting last played: %w", err)
	}

	return &stats, nil
}
