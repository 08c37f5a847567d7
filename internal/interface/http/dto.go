package handlers

import (
	"github.com/oksasatya/go-logmanager/internal/application"
	"github.com/oksasatya/go-logmanager/internal/domain/entity"
)

type createUserRequest struct {
	Actor          string   `json:"actor"`
	Name           string   `json:"name"`
	Birthdate      string   `json:"birthdate"`
	Weight         *float64 `json:"weight"`
	Height         *float64 `json:"height"`
	FavouriteColor string   `json:"favouriteColor"`
}

func (r createUserRequest) toInput() application.UserRequest {
	return application.UserRequest{
		Actor:          r.Actor,
		Name:           r.Name,
		Birthdate:      r.Birthdate,
		Weight:         r.Weight,
		Height:         r.Height,
		FavouriteColor: r.FavouriteColor,
	}
}

type createLogRequest struct {
	Message  string `json:"message" binding:"required,max=2000"`
	Severity string `json:"severity" binding:"required,severity"`
	User     string `json:"user"`
}

type userResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Birthdate      string  `json:"birthdate"`
	Weight         float64 `json:"weight"`
	Height         float64 `json:"height"`
	FavouriteColor string  `json:"favouriteColor"`
	BMI            float64 `json:"bmi"`
}

func toUserResponse(u entity.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Name:           u.Name,
		Birthdate:      u.Birthdate.Format(application.BirthdateLayout),
		Weight:         u.Weight,
		Height:         u.Height,
		FavouriteColor: string(u.FavouriteColor),
		BMI:            u.BMI,
	}
}

func toUserResponses(users []entity.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type logResponse struct {
	ID        int64   `json:"id"`
	Severity  string  `json:"severity"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	User      *string `json:"user"`
}

func toLogResponse(l entity.Log) logResponse {
	return logResponse{
		ID:        l.ID,
		Severity:  string(l.Severity),
		Message:   l.Message,
		Timestamp: l.Timestamp.UTC().Format(application.TimestampLayout),
		User:      l.UserName,
	}
}

func toLogResponses(logs []entity.Log) []logResponse {
	out := make([]logResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogResponse(l))
	}
	return out
}
