package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// ValidationService holds the guards evaluated by the user service. Guards
// never mutate users; two of them write an audit log before failing, through
// the injected sink and inside the caller's unit of work.
type ValidationService struct {
	Audit  AuditSink
	Logger *logrus.Logger
}

func NewValidationService(audit AuditSink, logger *logrus.Logger) *ValidationService {
	return &ValidationService{Audit: audit, Logger: logger}
}

// CheckIfAnyEntriesAreNull fails with ParameterMissing listing every absent field.
func (v *ValidationService) CheckIfAnyEntriesAreNull(req UserRequest) error {
	var missing []string
	if strings.TrimSpace(req.Actor) == "" {
		missing = append(missing, "actor")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Birthdate) == "" {
		missing = append(missing, "birthdate")
	}
	if req.Weight == nil {
		missing = append(missing, "weight")
	}
	if req.Height == nil {
		missing = append(missing, "height")
	}
	if strings.TrimSpace(req.FavouriteColor) == "" {
		missing = append(missing, "favouriteColor")
	}
	if len(missing) > 0 {
		return newError(KindParameterMissing, msgParameterMissing, strings.Join(missing, ", "))
	}
	return nil
}

func (v *ValidationService) ValidateColor(color string) (entity.Color, error) {
	c, ok := entity.ParseColor(color)
	if !ok {
		return "", newError(KindIllegalColor, msgIllegalColor, color, entity.ColorChoices())
	}
	return c, nil
}

func (v *ValidationService) CheckIfUserToPostExists(ctx context.Context, repos repository.Repositories, name string) error {
	_, err := repos.Users.GetByName(ctx, name)
	switch {
	case err == nil:
		return newError(KindUserAlreadyExists, msgUserExists, name)
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

// CheckIfUsersListIsEmpty reports whether no user exists yet.
//
// On an empty store the create flow only passes when the candidate creates
// itself; any other actor is logged and rejected with NoUsersYet. The delete
// flow treats an empty store as the candidate not being found.
func (v *ValidationService) CheckIfUsersListIsEmpty(ctx context.Context, repos repository.Repositories, actorName string, candidate entity.User, isCreateFlow bool) (bool, error) {
	users, err := repos.Users.List(ctx)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}
	if !isCreateFlow {
		return false, newError(KindUserNotFound, msgUserNotFoundID, candidate.ID)
	}
	if actorName == candidate.Name {
		return true, nil
	}
	if _, err := v.Audit.AddLog(ctx, repos, LogInput{
		Message:  fmt.Sprintf(msgNoUsersYetLogged, candidate.Name, actorName),
		Severity: entity.SeverityWarning,
		User:     actorName,
	}); err != nil {
		return false, err
	}
	return false, newError(KindNoUsersYet, msgNoUsersYet, candidate.Name, actorName)
}

// CheckIfNameExists returns the user called name. With isActorCheck the
// failed lookup is recorded in the audit log first.
func (v *ValidationService) CheckIfNameExists(ctx context.Context, repos repository.Repositories, name string, isActorCheck bool) (*entity.User, error) {
	u, err := repos.Users.GetByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if isActorCheck {
		if _, err := v.Audit.AddLog(ctx, repos, LogInput{
			Message:  fmt.Sprintf(msgUnknownActor, name),
			Severity: entity.SeverityWarning,
			User:     name,
		}); err != nil {
			return nil, err
		}
	}
	return nil, newError(KindUserNotFound, msgUserNotFoundName, name)
}

func (v *ValidationService) CheckIfIDExists(ctx context.Context, repos repository.Repositories, id int64) (*entity.User, error) {
	u, err := repos.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(KindUserNotFound, msgUserNotFoundID, id)
	}
	return u, err
}

func (v *ValidationService) CheckIfUserToDeleteIDEqualsActorID(targetID, actorID int64) error {
	if targetID == actorID {
		return newError(KindUserCannotDeleteSelf, msgCannotDeleteSelfID, actorID)
	}
	return nil
}

func (v *ValidationService) CheckIfUserToDeleteEqualsActor(targetName, actorName string) error {
	if targetName == actorName {
		return newError(KindUserCannotDeleteSelf, msgCannotDeleteSelf, actorName)
	}
	return nil
}

func (v *ValidationService) CheckIfExistLogByUserToDelete(ctx context.Context, repos repository.Repositories, user entity.User) error {
	referenced, err := v.Audit.ExistLogByUserToDelete(ctx, repos, user)
	if err != nil {
		return err
	}
	if referenced {
		return newError(KindUserReferenced, msgUserReferenced, user.Name)
	}
	return nil
}

func (v *ValidationService) CheckIfUsersAreReferenced(ctx context.Context, repos repository.Repositories) error {
	logs, err := repos.Logs.List(ctx, repository.LogFilter{})
	if err != nil {
		return err
	}
	for _, l := range logs {
		if l.UserID != nil {
			return newError(KindUsersReferenced, msgUsersReferenced)
		}
	}
	return nil
}
