package cmd

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/pocketbase/dbx"
	"github.com/stretchr/testify/assert"
)

func pendingRow() dbx.NullStringMap {
	ns := func(v string) sql.NullString {
		return sql.NullString{String: v, Valid: v != ""}
	}
	return dbx.NullStringMap{
		"order_id":            ns("7"),
		"person_id":           ns("7f2f4b10-4a2e-4a8f-9a6e-1c0f1f6a2b3c"),
		"event_id":            ns("b1c6a9d2-83fe-4e1a-bb0d-2f4a6c8e0d1f"),
		"amount":              ns("5000"),
		"provider":            ns("VPOS"),
		"ticket_holders":      ns("7f2f4b10-4a2e-4a8f-9a6e-1c0f1f6a2b3c,b1c6a9d2-83fe-4e1a-bb0d-2f4a6c8e0d1f"),
		"upstream_payment_id": ns("upstream-7"),
		"status":              ns("PENDING"),
	}
}

func TestRestorePendingOrdersRoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectExists("payment:order:7").SetVal(0)
	mock.ExpectHSet("payment:order:7", "order_id", "7").SetVal(1)
	mock.ExpectHSet("payment:order:7", "person_id", "7f2f4b10-4a2e-4a8f-9a6e-1c0f1f6a2b3c").SetVal(1)
	mock.ExpectHSet("payment:order:7", "event_id", "b1c6a9d2-83fe-4e1a-bb0d-2f4a6c8e0d1f").SetVal(1)
	mock.ExpectHSet("payment:order:7", "amount", "5000").SetVal(1)
	mock.ExpectHSet("payment:order:7", "provider", "VPOS").SetVal(1)
	// Holders are stored comma-joined in the database and restored to
	// the JSON array shape the order hash carries.
	mock.ExpectHSet("payment:order:7", "ticket_holders", `["7f2f4b10-4a2e-4a8f-9a6e-1c0f1f6a2b3c","b1c6a9d2-83fe-4e1a-bb0d-2f4a6c8e0d1f"]`).SetVal(1)
	mock.ExpectHSet("payment:order:7", "upstream_payment_id", "upstream-7").SetVal(1)
	mock.ExpectHSet("payment:order:7", "status", "PENDING").SetVal(1)
	mock.ExpectSet("payment:upstream:upstream-7", "7", 0).SetVal("OK")

	restored := restorePendingOrders(context.Background(), db, []dbx.NullStringMap{pendingRow()})
	assert.Equal(t, 1, restored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestorePendingOrdersSkipsLiveOrders(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectExists("payment:order:7").SetVal(1)

	restored := restorePendingOrders(context.Background(), db, []dbx.NullStringMap{pendingRow()})
	assert.Equal(t, 0, restored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBumpOrderSeqPastPersistedMax(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectGet("payment:order_seq").SetVal("9")
	mock.ExpectSet("payment:order_seq", int64(10), 0).SetVal("OK")

	bumpOrderSeq(context.Background(), db, 10)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBumpOrderSeqKeepsHigherCurrent(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectGet("payment:order_seq").SetVal("42")

	bumpOrderSeq(context.Background(), db, 10)
	assert.NoError(t, mock.ExpectationsWereMet())
}
