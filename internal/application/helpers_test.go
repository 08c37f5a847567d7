package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-logmanager/internal/domain/bmi"
	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
	"github.com/oksasatya/go-logmanager/internal/infrastructure/memory"
)

var (
	fixedNow   = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	fixedClock = func() time.Time { return fixedNow }
)

type recordingPublisher struct {
	logs []entity.Log
}

func (p *recordingPublisher) PublishLog(_ context.Context, l entity.Log) error {
	p.logs = append(p.logs, l)
	return nil
}

type fixture struct {
	store     *memory.Store
	users     *UserService
	logs      *LogService
	publisher *recordingPublisher
	hook      *logtest.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store := memory.NewStore()
	pub := &recordingPublisher{}
	logs := NewLogService(store, pub, nil, nil, logger)
	logs.Now = fixedClock
	users := NewUserService(store, NewValidationService(logs, logger), logs, bmi.NewCalculator(fixedClock), logger)
	return &fixture{store: store, users: users, logs: logs, publisher: pub, hook: hook}
}

func ptr(f float64) *float64 { return &f }

// seedUsers inserts users straight into the store so that no log references them.
func (f *fixture) seedUsers(t *testing.T, users ...entity.User) {
	t.Helper()
	require.NoError(t, f.store.Do(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		for i := range users {
			if err := repos.Users.Create(ctx, &users[i]); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (f *fixture) allLogs(t *testing.T) []entity.Log {
	t.Helper()
	logs, err := f.logs.ListLogs(context.Background(), repository.LogFilter{})
	require.NoError(t, err)
	return logs
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func petraTorstenHans() []entity.User {
	return []entity.User{
		{Name: "Petra", Birthdate: date(1999, time.December, 13), Weight: 65.0, Height: 1.6, FavouriteColor: entity.ColorRed, BMI: 25.39},
		{Name: "Torsten", Birthdate: date(1985, time.December, 5), Weight: 61.3, Height: 1.83, FavouriteColor: entity.ColorBlue, BMI: 18.3},
		{Name: "Hans", Birthdate: date(1993, time.February, 3), Weight: 75.7, Height: 1.85, FavouriteColor: entity.ColorRed, BMI: 22.11},
	}
}
