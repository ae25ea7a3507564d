package state

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlift/feedlift/pkg/core"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := &SQLStore{db: db, dialect: dialectSQLite, logger: slog.New(slog.DiscardHandler)}
	return store, mock
}

func TestSQLStore_UpsertShop_ExecError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO shops").WillReturnError(assert.AnError)

	err := store.UpsertShop(context.Background(), &core.Shop{ID: "shop-1", Name: "Acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert shop")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_GetShop_QueryError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT id, name, fields, mappings").WillReturnError(assert.AnError)

	_, err := store.GetShop(context.Background(), "shop-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get shop")
}

func TestSQLStore_GetShop_CorruptSettings(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "name", "fields", "mappings", "created_at", "updated_at"}).
		AddRow("shop-1", "Acme", "not json", "{}", now, now)
	mock.ExpectQuery("SELECT id, name, fields, mappings").WillReturnRows(rows)

	_, err := store.GetShop(context.Background(), "shop-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode shop fields")
}

func TestSQLStore_ClearAttributeOverrides_RollsBackOnDeleteError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT product_id FROM overrides").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow("KET-001"))
	mock.ExpectExec("DELETE FROM overrides").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := store.ClearAttributeOverrides(context.Background(), "shop-1", "brand")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear overrides")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SaveSnapshot_ExecError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO snapshots").WillReturnError(assert.AnError)

	snap := &core.FeedSnapshot{ShopID: "shop-1", ProductID: "KET-001"}
	err := store.SaveSnapshot(context.Background(), snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save snapshot")
}
