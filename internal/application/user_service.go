package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/internal/domain/bmi"
	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// BirthdateLayout is the accepted birthdate format (ISO calendar date).
const BirthdateLayout = "2006-01-02"

// UserRequest is the create-user payload. Weight and Height are pointers so
// that an absent value can be told apart from zero.
type UserRequest struct {
	Actor          string
	Name           string
	Birthdate      string
	Weight         *float64
	Height         *float64
	FavouriteColor string
}

type UserService struct {
	UoW        repository.UnitOfWork
	Validation *ValidationService
	Logs       *LogService
	BMI        *bmi.Calculator
	Logger     *logrus.Logger
}

func NewUserService(uow repository.UnitOfWork, validation *ValidationService, logs *LogService, calc *bmi.Calculator, logger *logrus.Logger) *UserService {
	return &UserService{UoW: uow, Validation: validation, Logs: logs, BMI: calc, Logger: logger}
}

// AddUser stores a new user and returns its BMI message. The very first user
// must be created by itself (actor == name).
func (s *UserService) AddUser(ctx context.Context, req UserRequest) (string, error) {
	if err := s.Validation.CheckIfAnyEntriesAreNull(req); err != nil {
		return "", err
	}
	candidate, err := s.candidate(req)
	if err != nil {
		return "", err
	}
	bmiMessage := s.BMI.Describe(candidate.Birthdate, candidate.Weight, candidate.Height)

	var written []entity.Log
	err = s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := s.Validation.CheckIfUserToPostExists(ctx, repos, candidate.Name); err != nil {
			return err
		}
		actorName := strings.TrimSpace(req.Actor)
		empty, err := s.Validation.CheckIfUsersListIsEmpty(ctx, repos, actorName, candidate, true)
		if err != nil {
			return err
		}
		actor := candidate.Name
		if !empty {
			u, err := s.Validation.CheckIfNameExists(ctx, repos, actorName, true)
			if err != nil {
				return err
			}
			actor = u.Name
		}
		if err := repos.Users.Create(ctx, &candidate); err != nil {
			return err
		}
		l, err := s.Logs.AddLog(ctx, repos, LogInput{
			Message:  fmt.Sprintf(msgUserCreated, candidate.Name, bmiMessage),
			Severity: entity.SeverityInfo,
			User:     actor,
		})
		if err != nil {
			return err
		}
		written = append(written, *l)
		return nil
	})
	if err != nil {
		return "", err
	}

	s.Logs.Publish(ctx, written...)
	s.Logger.WithField("user_id", candidate.ID).Info(fmt.Sprintf(msgUserCreated, candidate.Name, bmiMessage))
	return bmiMessage, nil
}

// candidate builds the user to persist: color lowercased, BMI computed now.
func (s *UserService) candidate(req UserRequest) (entity.User, error) {
	color, err := s.Validation.ValidateColor(req.FavouriteColor)
	if err != nil {
		return entity.User{}, err
	}
	birthdate, err := time.Parse(BirthdateLayout, strings.TrimSpace(req.Birthdate))
	if err != nil {
		return entity.User{}, newError(KindInvalidParameter, msgInvalidBirthdate, req.Birthdate)
	}
	if *req.Weight <= 0 {
		return entity.User{}, newError(KindInvalidParameter, msgNotPositive, "weight")
	}
	if *req.Height <= 0 {
		return entity.User{}, newError(KindInvalidParameter, msgNotPositive, "height")
	}
	return entity.User{
		Name:           strings.TrimSpace(req.Name),
		Birthdate:      birthdate,
		Weight:         *req.Weight,
		Height:         *req.Height,
		FavouriteColor: color,
		BMI:            bmi.Calculate(*req.Weight, *req.Height),
	}, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id int64, actorName string) (string, error) {
	msg := fmt.Sprintf(msgEntriesDeleted, strconv.FormatInt(id, 10))
	var written []entity.Log
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		target, err := s.Validation.CheckIfIDExists(ctx, repos, id)
		if err != nil {
			return err
		}
		actor, err := s.Validation.CheckIfNameExists(ctx, repos, actorName, false)
		if err != nil {
			return err
		}
		if err := s.Validation.CheckIfUserToDeleteIDEqualsActorID(id, actor.ID); err != nil {
			return err
		}
		if _, err := s.Validation.CheckIfUsersListIsEmpty(ctx, repos, actor.Name, *target, false); err != nil {
			return err
		}
		if err := s.Validation.CheckIfExistLogByUserToDelete(ctx, repos, *target); err != nil {
			return err
		}
		if err := repos.Users.DeleteByID(ctx, id); err != nil {
			return err
		}
		l, err := s.Logs.AddLog(ctx, repos, LogInput{Message: msg, Severity: entity.SeverityWarning, User: actorName})
		if err != nil {
			return err
		}
		written = append(written, *l)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.Logs.Publish(ctx, written...)
	return msg, nil
}

// DeleteByName deletes the user called name. The confirmation carries the
// deleted user's id.
func (s *UserService) DeleteByName(ctx context.Context, name, actorName string) (string, error) {
	var (
		msg     string
		written []entity.Log
	)
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		target, err := s.Validation.CheckIfNameExists(ctx, repos, name, false)
		if err != nil {
			return err
		}
		if err := s.Validation.CheckIfExistLogByUserToDelete(ctx, repos, *target); err != nil {
			return err
		}
		if _, err := s.Validation.CheckIfNameExists(ctx, repos, actorName, false); err != nil {
			return err
		}
		if err := s.Validation.CheckIfUserToDeleteEqualsActor(name, actorName); err != nil {
			return err
		}
		if err := repos.Users.DeleteByID(ctx, target.ID); err != nil {
			return err
		}
		msg = fmt.Sprintf(msgEntriesDeleted, strconv.FormatInt(target.ID, 10))
		l, err := s.Logs.AddLog(ctx, repos, LogInput{Message: msg, Severity: entity.SeverityWarning, User: actorName})
		if err != nil {
			return err
		}
		written = append(written, *l)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.Logs.Publish(ctx, written...)
	return msg, nil
}

// DeleteAll removes every user unless any of them is referenced by a log.
// The resulting log has no user reference since the actor is gone too.
func (s *UserService) DeleteAll(ctx context.Context, actorName string) (string, error) {
	var written []entity.Log
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := s.Validation.CheckIfUsersAreReferenced(ctx, repos); err != nil {
			return err
		}
		if err := repos.Users.DeleteAll(ctx); err != nil {
			return err
		}
		l, err := s.Logs.AddLog(ctx, repos, LogInput{Message: msgAllUsersDeleted, Severity: entity.SeverityInfo, User: actorName})
		if err != nil {
			return err
		}
		written = append(written, *l)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.Logs.Publish(ctx, written...)
	return msgAllUsersDeleted, nil
}

func (s *UserService) FindUserList(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) (err error) {
		users, err = repos.Users.List(ctx)
		return err
	})
	return users, err
}

func (s *UserService) FindUserByID(ctx context.Context, id int64) (*entity.User, error) {
	var u *entity.User
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) (err error) {
		u, err = repos.Users.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return newError(KindUserNotFound, msgUserNotFoundID, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
