package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"artwork-dedup/pkg/database"
)

// SQLStore persists events in a SQL table with ordered IDs.
// Table schema:
// CREATE TABLE IF NOT EXISTS artwork_events (
//   id BIGINT AUTO_INCREMENT PRIMARY KEY,
//   artwork_id VARCHAR(64) NOT NULL,
//   type VARCHAR(64) NOT NULL,
//   at DATETIME(6) NOT NULL,
//   data JSON NOT NULL,
//   KEY idx_artwork_id (artwork_id),
//   KEY idx_artwork_time (artwork_id, id)
// );
// NOTE: JSON may be emulated as LONGTEXT on older MySQL variants.

type SQLStore struct {
	db *database.DB
}

func NewSQLStore(db *database.DB) *SQLStore {
	s := &SQLStore{db: db}
	if err := s.ensureTable(); err != nil {
		// Best effort; don't crash app start
		log.Printf("events: ensure table error: %v", err)
	}
	return s
}

func (s *SQLStore) ensureTable() error {
	qry := `CREATE TABLE IF NOT EXISTS artwork_events (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		artwork_id VARCHAR(64) NOT NULL,
		type VARCHAR(64) NOT NULL,
		at DATETIME(6) NOT NULL,
		data JSON NOT NULL,
		KEY idx_artwork_id (artwork_id),
		KEY idx_artwork_time (artwork_id, id)
	)`
	_, err := s.db.Conn().Exec(qry)
	return err
}

func (s *SQLStore) Append(ctx context.Context, evs ...Event) error {
	if len(evs) == 0 {
		return nil
	}
	tx, err := s.db.Conn().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO artwork_events (artwork_id, type, at, data) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range evs {
		b, err := e.MarshalData()
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		at := e.Timestamp()
		if at.IsZero() {
			at = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, e.ArtworkID(), e.Type(), at, string(b)); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *SQLStore) ListByArtwork(ctx context.Context, artworkID string) ([]StoredEvent, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT id, artwork_id, type, at, data FROM artwork_events WHERE artwork_id = ? ORDER BY id ASC`, artworkID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []StoredEvent
	for rows.Next() {
		var se StoredEvent
		var dataStr string
		if err := rows.Scan(&se.Seq, &se.ArtworkID, &se.Type, &se.Ts, &dataStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		se.Payload = json.RawMessage(dataStr)
		out = append(out, se)
	}
	return out, rows.Err()
}

// ReplayArtwork lists and replays an artwork's trail in one call.
func (s *SQLStore) ReplayArtwork(ctx context.Context, artworkID string) (*ArtworkState, error) {
	events, err := s.ListByArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	return Replay(events), nil
}

var _ Store = (*SQLStore)(nil)
