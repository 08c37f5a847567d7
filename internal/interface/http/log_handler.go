package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/internal/application"
	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/pkg/response"
	"github.com/oksasatya/go-logmanager/pkg/validation"
)

type LogHandler struct {
	Svc    *application.LogService
	Logger *logrus.Logger
}

func NewLogHandler(svc *application.LogService, logger *logrus.Logger) *LogHandler {
	return &LogHandler{Svc: svc, Logger: logger}
}

// List handles GET /logs?severity=&message=&user=&from=&to=.
func (h *LogHandler) List(c *gin.Context) {
	filter, err := application.ParseLogQuery(application.LogQuery{
		Severity: c.Query("severity"),
		Message:  c.Query("message"),
		User:     c.Query("user"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	logs, err := h.Svc.ListLogs(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, toLogResponses(logs))
}

func (h *LogHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	l, err := h.Svc.FindLogByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Object(c, http.StatusOK, toLogResponse(*l))
}

func (h *LogHandler) Create(c *gin.Context) {
	var req createLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.ToDetails(err)
		response.Error[any](c, http.StatusBadRequest, validation.Summary(details), string(application.KindInvalidParameter))
		return
	}
	l, err := h.Svc.CreateLog(c.Request.Context(), application.LogInput{
		Message:  req.Message,
		Severity: entity.Severity(req.Severity),
		User:     req.User,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Object(c, http.StatusCreated, toLogResponse(*l))
}

// Delete handles DELETE /logs?ids=1,2; either all listed logs go or none.
func (h *LogHandler) Delete(c *gin.Context) {
	raw, err := requireQuery(c, "ids")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ids, err := parseIDs(raw)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	msg, err := h.Svc.DeleteLogs(c.Request.Context(), ids)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msg, nil)
}

func (h *LogHandler) Search(c *gin.Context) {
	q, err := requireQuery(c, "q")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	size := 0
	if raw := c.Query("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			writeError(c, h.Logger, application.InvalidIDFormat(raw))
			return
		}
	}
	hits, err := h.Svc.SearchLogs(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]logResponse, 0, len(hits))
	for _, ev := range hits {
		out = append(out, logResponse{
			ID:        ev.ID,
			Severity:  ev.Severity,
			Message:   ev.Message,
			Timestamp: ev.Timestamp.UTC().Format(application.TimestampLayout),
			User:      ev.User,
		})
	}
	response.List(c, out)
}

func (h *LogHandler) Export(c *gin.Context) {
	actor, err := requireQuery(c, "actor")
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	url, err := h.Svc.ExportLogs(c.Request.Context(), actor)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "Logs were exported to "+url+".", nil)
}
