package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-logmanager/internal/interface/http"
)

type LogModule struct {
	Handler       *handlers.LogHandler
	Limiter       gin.HandlerFunc
	ExportLimiter gin.HandlerFunc
}

func NewLogModule(h *handlers.LogHandler, limiter, exportLimiter gin.HandlerFunc) *LogModule {
	return &LogModule{Handler: h, Limiter: limiter, ExportLimiter: exportLimiter}
}

func (m *LogModule) Register(rg *gin.RouterGroup) {
	logs := rg.Group("/logs")
	if m.Limiter != nil {
		logs.Use(m.Limiter)
	}
	{
		logs.GET("", m.Handler.List)
		logs.GET("/search", m.Handler.Search)
		logs.GET("/:id", m.Handler.Get)
		logs.POST("", m.Handler.Create)
		logs.DELETE("", m.Handler.Delete)
	}
	export := []gin.HandlerFunc{m.Handler.Export}
	if m.ExportLimiter != nil {
		export = append([]gin.HandlerFunc{m.ExportLimiter}, export...)
	}
	logs.POST("/export", export...)
}
