package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/internal/application"
	"github.com/oksasatya/go-logmanager/pkg/helpers"
	"github.com/oksasatya/go-logmanager/pkg/response"
)

var statusByKind = map[application.Kind]int{
	application.KindParameterMissing:     http.StatusBadRequest,
	application.KindIllegalColor:         http.StatusBadRequest,
	application.KindNoUsersYet:           http.StatusBadRequest,
	application.KindUserCannotDeleteSelf: http.StatusBadRequest,
	application.KindInvalidParameter:     http.StatusBadRequest,
	application.KindUserNotFound:         http.StatusNotFound,
	application.KindLogNotFound:          http.StatusNotFound,
	application.KindUserAlreadyExists:    http.StatusConflict,
	application.KindUserReferenced:       http.StatusConflict,
	application.KindUsersReferenced:      http.StatusConflict,
}

// StatusFor maps an error to its HTTP status; errors without a kind are 500.
func StatusFor(err error) int {
	if kind, ok := application.KindOf(err); ok {
		if status, ok := statusByKind[kind]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err as a failed envelope. Rule violations carry their
// message verbatim; anything else is logged and hidden.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind, ok := application.KindOf(err)
	if !ok {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal server error", "InternalError")
		return
	}
	response.Error[any](c, StatusFor(err), err.Error(), string(kind))
}
