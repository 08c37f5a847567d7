package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

func seedUser(t *testing.T, s *Store, name string) entity.User {
	t.Helper()
	u := entity.User{Name: name, Birthdate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Weight: 70, Height: 1.8, FavouriteColor: entity.ColorGreen}
	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		return repos.Users.Create(ctx, &u)
	}))
	return u
}

func TestStore_SequentialIDs(t *testing.T) {
	s := NewStore()
	assert.Equal(t, int64(1), seedUser(t, s, "Petra").ID)
	assert.Equal(t, int64(2), seedUser(t, s, "Torsten").ID)
	assert.Equal(t, int64(3), seedUser(t, s, "Hans").ID)

	var users []entity.User
	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) (err error) {
		users, err = repos.Users.List(ctx)
		return err
	}))
	require.Len(t, users, 3)
	assert.Equal(t, []string{"Petra", "Torsten", "Hans"}, []string{users[0].Name, users[1].Name, users[2].Name})
}

func TestStore_RollbackRestoresState(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "Petra")

	boom := errors.New("boom")
	err := s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		uid := int64(1)
		require.NoError(t, repos.Logs.Create(ctx, &entity.Log{Message: "x", Severity: entity.SeverityWarning, UserID: &uid}))
		require.NoError(t, repos.Users.Create(ctx, &entity.User{Name: "Hugo"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		logs, err := repos.Logs.List(ctx, repository.LogFilter{})
		require.NoError(t, err)
		assert.Empty(t, logs)

		_, err = repos.Users.GetByName(ctx, "Hugo")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		hugo := entity.User{Name: "Hugo"}
		require.NoError(t, repos.Users.Create(ctx, &hugo))
		assert.Equal(t, int64(2), hugo.ID)
		return nil
	}))
}

func TestStore_LogsResolveUserAndBlockDelete(t *testing.T) {
	s := NewStore()
	petra := seedUser(t, s, "Petra")
	ts := time.Date(2000, 12, 12, 12, 12, 12, 0, time.UTC)

	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		require.NoError(t, repos.Logs.Create(ctx, &entity.Log{Message: "User created", Severity: entity.SeverityInfo, Timestamp: ts, UserID: &petra.ID}))
		require.NoError(t, repos.Logs.Create(ctx, &entity.Log{Message: "anonymous", Severity: entity.SeverityError, Timestamp: ts}))

		l, err := repos.Logs.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, l.UserName)
		assert.Equal(t, "Petra", *l.UserName)

		exists, err := repos.Logs.ExistsByUserID(ctx, petra.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		assert.ErrorIs(t, repos.Users.DeleteByID(ctx, petra.ID), ErrReferenced)
		assert.ErrorIs(t, repos.Users.DeleteAll(ctx), ErrReferenced)
		assert.ErrorIs(t, repos.Users.DeleteByID(ctx, 42), repository.ErrNotFound)
		return nil
	}))
}

func TestStore_LogFilter(t *testing.T) {
	s := NewStore()
	petra := seedUser(t, s, "Petra")
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		require.NoError(t, repos.Logs.Create(ctx, &entity.Log{Message: "User Created", Severity: entity.SeverityInfo, Timestamp: early, UserID: &petra.ID}))
		require.NoError(t, repos.Logs.Create(ctx, &entity.Log{Message: "delete failed", Severity: entity.SeverityWarning, Timestamp: late}))

		logs, err := repos.Logs.List(ctx, repository.LogFilter{Message: "created"})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, int64(1), logs[0].ID)

		logs, err = repos.Logs.List(ctx, repository.LogFilter{UserName: "Petra"})
		require.NoError(t, err)
		assert.Len(t, logs, 1)

		from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
		logs, err = repos.Logs.List(ctx, repository.LogFilter{From: &from, Severity: entity.SeverityWarning})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, int64(2), logs[0].ID)

		require.NoError(t, repos.Logs.DeleteByIDs(ctx, []int64{1, 2}))
		logs, err = repos.Logs.List(ctx, repository.LogFilter{})
		require.NoError(t, err)
		assert.Empty(t, logs)
		return nil
	}))
}

func TestStore_LogFilterMessageIsLiteral(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		require.NoError(t, repos.Logs.Create(ctx, &entity.Log{Message: "Quota at 50% reached", Severity: entity.SeverityInfo}))
		require.NoError(t, repos.Logs.Create(ctx, &entity.Log{Message: "user_name changed", Severity: entity.SeverityInfo}))

		logs, err := repos.Logs.List(ctx, repository.LogFilter{Message: "50%"})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, int64(1), logs[0].ID)

		logs, err = repos.Logs.List(ctx, repository.LogFilter{Message: "%"})
		require.NoError(t, err)
		assert.Len(t, logs, 1)

		logs, err = repos.Logs.List(ctx, repository.LogFilter{Message: "USER_"})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, int64(2), logs[0].ID)
		return nil
	}))
}
