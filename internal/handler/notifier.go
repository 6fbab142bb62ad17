package handler

import (
	"context"

	"jobsite/internal/middleware"
	"jobsite/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Notifier is the dispatch surface handlers use; satisfied by *notify.Dispatcher
type Notifier interface {
	NotifyUser(userID uuid.UUID, ev notify.Event)
	NotifyAllAdmins(ctx context.Context, ev notify.Event)
}

// TaskCache is the listing cache surface; satisfied by *cache.TaskListCache.
// A nil TaskCache disables caching.
type TaskCache interface {
	Key(ctx context.Context, parts ...string) string
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context)
}

// currentUser достает ID и роль аутентифицированного пользователя из контекста
func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, "", false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, _ := c.Get(middleware.UserRoleKey)
	roleStr, _ := role.(string)
	return userID, roleStr, true
}
