package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

var logCols = []string{"id", "message", "severity", "logged_at", "user_id", "name"}

func TestLogRepository_Create(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2000, time.December, 12, 12, 12, 12, 0, time.UTC)
	uid := int64(2)

	mock.ExpectQuery(`INSERT INTO logs`).
		WithArgs("Test", "INFO", ts, &uid).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	l := &entity.Log{Message: "Test", Severity: entity.SeverityInfo, Timestamp: ts, UserID: &uid}
	require.NoError(t, NewLogRepository(mock).Create(context.Background(), l))
	assert.Equal(t, int64(7), l.ID)
}

func TestLogRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2000, time.December, 12, 12, 12, 12, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE l.id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(logCols).AddRow(int64(1), "Test", "WARNING", ts, int64(2), "Torsten"))

	l, err := NewLogRepository(mock).GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.SeverityWarning, l.Severity)
	require.NotNil(t, l.UserName)
	assert.Equal(t, "Torsten", *l.UserName)
	assert.Equal(t, int64(2), *l.UserID)
}

func TestLogRepository_GetByID_NullUser(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2000, time.December, 12, 12, 12, 12, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE l.id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(logCols).AddRow(int64(1), "Test", "INFO", ts, int64(0), ""))

	l, err := NewLogRepository(mock).GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, l.UserID)
	assert.Nil(t, l.UserName)
}

func TestLogRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE l.id = $1`)).WithArgs(int64(20)).WillReturnError(pgx.ErrNoRows)

	_, err := NewLogRepository(mock).GetByID(context.Background(), 20)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogRepository_List_WithFilter(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2000, time.December, 12, 12, 12, 12, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE l.severity = $1 AND u.name = $2 ORDER BY l.id`)).
		WithArgs("WARNING", "Torsten").
		WillReturnRows(pgxmock.NewRows(logCols).AddRow(int64(3), "deleted", "WARNING", ts, int64(2), "Torsten"))

	logs, err := NewLogRepository(mock).List(context.Background(), repository.LogFilter{
		Severity: entity.SeverityWarning,
		UserName: "Torsten",
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(3), logs[0].ID)
}

func TestLogWhere(t *testing.T) {
	from := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	where, args := logWhere(repository.LogFilter{Message: "created", From: &from})
	assert.Equal(t, " WHERE strpos(lower(l.message), lower($1)) > 0 AND l.logged_at >= $2", where)
	assert.Equal(t, []any{"created", from}, args)

	// % and _ reach strpos as plain characters
	where, args = logWhere(repository.LogFilter{Message: "50%_"})
	assert.NotContains(t, where, "LIKE")
	assert.Equal(t, []any{"50%_"}, args)

	where, args = logWhere(repository.LogFilter{})
	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestLogRepository_DeleteByIDs(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM logs`).WithArgs([]int64{1, 2}).WillReturnResult(pgxmock.NewResult("DELETE", 2))

	require.NoError(t, NewLogRepository(mock).DeleteByIDs(context.Background(), []int64{1, 2}))
	require.NoError(t, NewLogRepository(mock).DeleteByIDs(context.Background(), nil))
}

func TestLogRepository_ExistsByUserID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(2)).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewLogRepository(mock).ExistsByUserID(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)
}
