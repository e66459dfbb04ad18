package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mealview/internal/model"
)

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.FetchRecord{}))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewGormStore(gormDB)
}

func TestGormStore_RecordAndList(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []model.FetchRecord{
		{SessionID: "a", Cycle: 1, StartedAt: base, FinishedAt: base.Add(time.Second), Outcome: model.OutcomeLoaded, MealID: "1", MealName: "Soup"},
		{SessionID: "a", Cycle: 2, StartedAt: base.Add(time.Minute), FinishedAt: base.Add(time.Minute + time.Second), Outcome: model.OutcomeFailed, ErrorKind: "payload", ErrorMessage: "invalid payload: meals list is empty"},
		{SessionID: "b", Cycle: 1, StartedAt: base.Add(2 * time.Minute), FinishedAt: base.Add(2*time.Minute + time.Second), Outcome: model.OutcomeDiscarded, ErrorKind: "canceled"},
	}
	for i := range records {
		require.NoError(t, s.RecordFetch(ctx, &records[i]))
		assert.NotZero(t, records[i].ID)
	}

	got, err := s.RecentFetches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].SessionID)
	assert.Equal(t, model.OutcomeDiscarded, got[0].Outcome)
	assert.Equal(t, model.OutcomeFailed, got[1].Outcome)
	assert.Equal(t, "payload", got[1].ErrorKind)

	all, err := s.RecentFetches(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Soup", all[2].MealName)
}

func TestGormStore_RecordNil(t *testing.T) {
	s := newSQLiteStore(t)
	assert.Error(t, s.RecordFetch(context.Background(), nil))
}

func TestGormStore_RecordFetchError(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "fetch_records"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.RecordFetch(context.Background(), &model.FetchRecord{SessionID: "a", Cycle: 3, Outcome: model.OutcomeLoaded})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record fetch cycle 3 for session a")
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_RecentFetchesError(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "fetch_records"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := s.RecentFetches(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
