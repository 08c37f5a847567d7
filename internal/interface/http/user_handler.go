package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/internal/application"
	"github.com/oksasatya/go-logmanager/pkg/response"
	"github.com/oksasatya/go-logmanager/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Create handles POST /users and answers with the new user's BMI message.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	msg, err := h.Svc.AddUser(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, msg, nil)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.FindUserList(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, toUserResponses(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	u, err := h.Svc.FindUserByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Object(c, http.StatusOK, toUserResponse(*u))
}

func (h *UserHandler) DeleteByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	actor, err := requireQuery(c, "actor")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	msg, err := h.Svc.DeleteByID(c.Request.Context(), id, actor)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

func (h *UserHandler) DeleteByName(c *gin.Context) {
	actor, err := requireQuery(c, "actor")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	msg, err := h.Svc.DeleteByName(c.Request.Context(), c.Param("name"), actor)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

func (h *UserHandler) DeleteAll(c *gin.Context) {
	actor, err := requireQuery(c, "actor")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	msg, err := h.Svc.DeleteAll(c.Request.Context(), actor)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

