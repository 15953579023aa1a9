package cgbdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgtype"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
)

const (
	createAuditTable = `
CREATE TABLE IF NOT EXISTS blackjack_audit (
  id          BIGSERIAL PRIMARY KEY,
  player_id   TEXT NOT NULL,
  session_id  TEXT NOT NULL DEFAULT '',
  round_id    BIGINT NOT NULL DEFAULT 0,
  action      TEXT NOT NULL,
  debit       BIGINT NOT NULL DEFAULT 0,
  credit      BIGINT NOT NULL DEFAULT 0,
  record      JSONB NOT NULL,
  create_time TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS blackjack_audit_player_idx ON blackjack_audit (player_id, id DESC);`

	insertAudit = `
INSERT INTO blackjack_audit (player_id, session_id, round_id, action, debit, credit, record, create_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	selectRecent = `
SELECT record FROM blackjack_audit WHERE player_id = $1 ORDER BY id DESC LIMIT $2`
)

var _ ledger.AuditLog = &AuditLog{}

// AuditLog appends audit records to Postgres. The whole record is kept as
// JSONB next to the columns used for lookups.
type AuditLog struct {
	db *sql.DB
}

func NewAuditLog(db *sql.DB) *AuditLog {
	return &AuditLog{db: db}
}

func (a *AuditLog) Migrate(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("migrate blackjack_audit: %w", err)
	}
	return nil
}

func (a *AuditLog) Record(ctx context.Context, rec ledger.AuditRecord) error {
	doc, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	at := pgtype.Timestamptz{}
	if err := at.Set(rec.At); err != nil {
		return fmt.Errorf("audit time: %w", err)
	}
	_, err = a.db.ExecContext(ctx, insertAudit,
		rec.PlayerID,
		rec.SessionID,
		rec.RoundID,
		string(rec.Action),
		rec.Debit,
		rec.Credit,
		doc,
		at,
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

func (a *AuditLog) Recent(ctx context.Context, playerID string, limit int) ([]ledger.AuditRecord, error) {
	rows, err := a.db.QueryContext(ctx, selectRecent, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}
	defer rows.Close()

	records := make([]ledger.AuditRecord, 0, limit)
	for rows.Next() {
		var doc pgtype.JSONB
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		rec, err := decodeRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func encodeRecord(rec ledger.AuditRecord) (pgtype.JSONB, error) {
	var doc pgtype.JSONB
	if err := doc.Set(rec); err != nil {
		return doc, fmt.Errorf("encode audit record: %w", err)
	}
	return doc, nil
}

func decodeRecord(doc pgtype.JSONB) (ledger.AuditRecord, error) {
	var rec ledger.AuditRecord
	if doc.Status != pgtype.Present {
		return rec, fmt.Errorf("decode audit record: null document")
	}
	if err := doc.AssignTo(&rec); err != nil {
		return rec, fmt.Errorf("decode audit record: %w", err)
	}
	return rec, nil
}
