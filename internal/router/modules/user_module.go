package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-logmanager/internal/interface/http"
)

// UserModule wires the user handlers:
// POST /users, GET /users, GET /users/:id,
// DELETE /users/:id, DELETE /users/name/:name, DELETE /users.
type UserModule struct {
	Handler *handlers.UserHandler
	Limiter gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, limiter gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Limiter: limiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	if m.Limiter != nil {
		users.Use(m.Limiter)
	}
	{
		users.POST("", m.Handler.Create)
		users.GET("", m.Handler.List)
		users.GET("/:id", m.Handler.Get)
		users.DELETE("", m.Handler.DeleteAll)
		users.DELETE("/:id", m.Handler.DeleteByID)
		users.DELETE("/name/:name", m.Handler.DeleteByName)
	}
}
