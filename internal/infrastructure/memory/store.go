package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// ErrReferenced mirrors the logs.user_id foreign key of the postgres schema.
var ErrReferenced = errors.New("user is referenced by logs")

var _ repository.UnitOfWork = (*Store)(nil)

// Store is an in-memory users/logs database. Every Do call holds the store
// lock for its whole duration and restores a snapshot when fn fails, which
// gives the same all-or-nothing behaviour as a postgres transaction.
type Store struct {
	mu    sync.Mutex
	state state
}

type state struct {
	users      map[int64]entity.User
	logs       map[int64]entity.Log
	nextUserID int64
	nextLogID  int64
}

func (s state) clone() state {
	return state{
		users:      maps.Clone(s.users),
		logs:       maps.Clone(s.logs),
		nextUserID: s.nextUserID,
		nextLogID:  s.nextLogID,
	}
}

func NewStore() *Store {
	return &Store{state: state{
		users:      make(map[int64]entity.User),
		logs:       make(map[int64]entity.Log),
		nextUserID: 1,
		nextLogID:  1,
	}}
}

// Do implements repository.UnitOfWork.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
		if err != nil {
			s.state = snapshot
		}
	}()

	return fn(ctx, repository.Repositories{
		Users: &userRepo{s: &s.state},
		Logs:  &logRepo{s: &s.state},
	})
}

type userRepo struct {
	s *state
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Name == u.Name {
			return errors.New("duplicate user name")
		}
	}
	u.ID = r.s.nextUserID
	r.s.nextUserID++
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) List(_ context.Context) ([]entity.User, error) {
	users := make([]entity.User, 0, len(r.s.users))
	for _, id := range slices.Sorted(maps.Keys(r.s.users)) {
		users = append(users, r.s.users[id])
	}
	return users, nil
}

func (r *userRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	if r.referenced(id) {
		return ErrReferenced
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) DeleteAll(_ context.Context) error {
	for id := range r.s.users {
		if r.referenced(id) {
			return ErrReferenced
		}
	}
	clear(r.s.users)
	return nil
}

func (r *userRepo) referenced(id int64) bool {
	for _, l := range r.s.logs {
		if l.UserID != nil && *l.UserID == id {
			return true
		}
	}
	return false
}

type logRepo struct {
	s *state
}

func (r *logRepo) Create(_ context.Context, l *entity.Log) error {
	if l.UserID != nil {
		if _, ok := r.s.users[*l.UserID]; !ok {
			return repository.ErrNotFound
		}
	}
	l.ID = r.s.nextLogID
	r.s.nextLogID++
	stored := *l
	stored.UserName = nil
	r.s.logs[l.ID] = stored
	return nil
}

func (r *logRepo) GetByID(_ context.Context, id int64) (*entity.Log, error) {
	l, ok := r.s.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.resolveUser(&l)
	return &l, nil
}

func (r *logRepo) List(_ context.Context, f repository.LogFilter) ([]entity.Log, error) {
	logs := make([]entity.Log, 0)
	for _, id := range slices.Sorted(maps.Keys(r.s.logs)) {
		l := r.s.logs[id]
		r.resolveUser(&l)
		if matches(l, f) {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (r *logRepo) DeleteByIDs(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(r.s.logs, id)
	}
	return nil
}

func (r *logRepo) ExistsByUserID(_ context.Context, userID int64) (bool, error) {
	for _, l := range r.s.logs {
		if l.UserID != nil && *l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *logRepo) resolveUser(l *entity.Log) {
	if l.UserID == nil {
		return
	}
	if u, ok := r.s.users[*l.UserID]; ok {
		name := u.Name
		l.UserName = &name
	}
}

func matches(l entity.Log, f repository.LogFilter) bool {
	if f.Severity != "" && l.Severity != f.Severity {
		return false
	}
	if f.Message != "" && !strings.Contains(strings.ToLower(l.Message), strings.ToLower(f.Message)) {
		return false
	}
	if f.UserName != "" && (l.UserName == nil || *l.UserName != f.UserName) {
		return false
	}
	if f.From != nil && l.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && l.Timestamp.After(*f.To) {
		return false
	}
	return true
}
