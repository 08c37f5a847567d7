package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

func TestCheckIfUsersListIsEmpty(t *testing.T) {
	f := newFixture(t)
	v := f.users.Validation
	candidate := entity.User{ID: 7, Name: "Petra"}

	require.NoError(t, f.store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		empty, err := v.CheckIfUsersListIsEmpty(ctx, repos, "Petra", candidate, true)
		require.NoError(t, err)
		assert.True(t, empty)

		_, err = v.CheckIfUsersListIsEmpty(ctx, repos, "Petra", candidate, false)
		require.ErrorIs(t, err, ErrUserNotFound)
		assert.EqualError(t, err, "User with the ID 7 does not exist!")

		_, err = v.CheckIfUsersListIsEmpty(ctx, repos, "Hans", candidate, true)
		require.ErrorIs(t, err, ErrNoUsersYet)

		// the guard wrote its audit log into the open unit of work
		logs, err := repos.Logs.List(ctx, repository.LogFilter{})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "User Petra could not be created by Hans because no users exist yet.", logs[0].Message)
		return nil
	}))
}

func TestCheckIfNameExists_ActorCheckLogs(t *testing.T) {
	f := newFixture(t)
	v := f.users.Validation

	require.NoError(t, f.store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		_, err := v.CheckIfNameExists(ctx, repos, "Peter", false)
		require.ErrorIs(t, err, ErrUserNotFound)
		logs, _ := repos.Logs.List(ctx, repository.LogFilter{})
		assert.Empty(t, logs)

		_, err = v.CheckIfNameExists(ctx, repos, "Peter", true)
		require.ErrorIs(t, err, ErrUserNotFound)
		assert.EqualError(t, err, "User with the name Peter does not exist!")
		logs, _ = repos.Logs.List(ctx, repository.LogFilter{})
		require.Len(t, logs, 1)
		assert.Equal(t, entity.SeverityWarning, logs[0].Severity)
		return nil
	}))
}

func TestCheckIfUserToDelete(t *testing.T) {
	v := &ValidationService{}
	assert.ErrorIs(t, v.CheckIfUserToDeleteIDEqualsActorID(2, 2), ErrUserCannotDeleteSelf)
	assert.NoError(t, v.CheckIfUserToDeleteIDEqualsActorID(2, 3))
	assert.ErrorIs(t, v.CheckIfUserToDeleteEqualsActor("Hans", "Hans"), ErrUserCannotDeleteSelf)
	assert.NoError(t, v.CheckIfUserToDeleteEqualsActor("Hans", "Torsten"))
}
