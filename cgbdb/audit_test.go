package cgbdb

import (
	"testing"
	"time"

	"github.com/jackc/pgtype"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDocument(t *testing.T) {
	rec := ledger.AuditRecord{
		PlayerID:  "p1",
		SessionID: "s1",
		RoundID:   42,
		Action:    entity.ActionDoubleDown,
		Debit:     1000,
		Credit:    4000,
		State:     entity.GameStateFinished,
		Result:    entity.OutcomeWin,
		Balance:   12000,
		At:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	doc, err := encodeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, pgtype.Present, doc.Status)
	assert.Contains(t, string(doc.Bytes), `"action":"doubleDown"`)
	assert.NotContains(t, string(doc.Bytes), `"error"`)

	got, err := decodeRecord(doc)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeNullRecord(t *testing.T) {
	_, err := decodeRecord(pgtype.JSONB{Status: pgtype.Null})
	assert.Error(t, err)
}
