// Package controller exposes the application's command surface: thin
// permission-gated operations over the persistence gateway, with
// appointment writes routed through the scheduling guard.
package controller

import (
	"practice-manager/internal/fault"
	"practice-manager/internal/logger"
	"practice-manager/internal/model"
	"practice-manager/internal/schedule"
	"practice-manager/internal/store"
)

// Sessions is the slice of the session manager the controllers consult
// before every operation.
type Sessions interface {
	IsActive() bool
	HasPermission(token string) bool
	CurrentUser() *model.User
}

type Controller struct {
	store *store.Store
	sess  Sessions
	guard *schedule.Guard
	log   *logger.Logger
}

func New(st *store.Store, sess Sessions, guard *schedule.Guard, log *logger.Logger) *Controller {
	return &Controller{store: st, sess: sess, guard: guard, log: log}
}

func (c *Controller) require(token string) error {
	if !c.sess.IsActive() {
		return fault.New(fault.KindUnauthorized, "no active session")
	}
	if !c.sess.HasPermission(token) {
		return fault.Newf(fault.KindUnauthorized, "missing permission %s", token)
	}
	return nil
}
