package notify

import (
	"context"

	"jobsite/internal/model"
	"jobsite/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope — кадр, который уходит клиенту по websocket
type Envelope struct {
	Event string `json:"event"`
	Data  Event  `json:"data"`
}

// Dispatcher fans events out to connected clients. Delivery is best-effort and
// at-most-once: no inbox, no retry, and a failure never reaches the caller.
type Dispatcher struct {
	hub   *Hub
	users repository.UserRepositoryInterface
	log   *zap.Logger
}

func NewDispatcher(hub *Hub, users repository.UserRepositoryInterface, log *zap.Logger) *Dispatcher {
	return &Dispatcher{hub: hub, users: users, log: log}
}

// NotifyUser delivers an event to one user's connections. Nothing happens if
// the user is not connected.
func (d *Dispatcher) NotifyUser(userID uuid.UUID, ev Event) {
	d.hub.Send(userID, Envelope{Event: "notification", Data: ev})
}

// NotifyAllAdmins resolves the current admin roster and delivers the event to
// each admin. The roster is queried at dispatch time, never cached, so an
// admin created a moment ago is included. Runs detached from the request:
// callers get their response regardless of how delivery goes.
func (d *Dispatcher) NotifyAllAdmins(ctx context.Context, ev Event) {
	go func() {
		admins, err := d.users.GetByRole(context.WithoutCancel(ctx), model.RoleAdmin)
		if err != nil {
			d.log.Error("admin roster lookup failed", zap.String("type", ev.Type), zap.Error(err))
			return
		}
		for _, admin := range admins {
			d.NotifyUser(admin.ID, ev)
		}
	}()
}
