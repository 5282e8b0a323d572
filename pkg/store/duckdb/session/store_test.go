package session

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/dmarc-atlas/pkg/store/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewStore(db)
	require.NoError(t, err)
	return store, mock
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestStore_Get(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
		WithArgs("range").
		WillReturnRows(sqlmock.NewRows([]string{"session_value"}).AddRow("stored"))

	value, err := store.Get(ctx, "range")
	require.NoError(t, err)
	assert.Equal(t, "stored", value)

	mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"session_value"}))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
		WithArgs("broken").
		WillReturnError(errors.New("database is locked"))

	_, err = store.Get(ctx, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SetAndDelete(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs("range", "value").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
		WithArgs("range").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(ctx, "range", "value"))
	require.NoError(t, store.Delete(ctx, "range"))

	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs("range", "value").
		WillReturnError(errors.New("read-only database"))
	assert.Error(t, store.Set(ctx, "range", "value"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_BehindSessionStorage(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
		WithArgs("tab:range").
		WillReturnError(errors.New("disk I/O error"))

	value, ok := session.NewStorage(store).WithNamespace("tab").Get(ctx, "range")
	assert.False(t, ok)
	assert.Empty(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
