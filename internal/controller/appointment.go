package controller

import (
	"context"
	"errors"
	"time"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

// CreateAppointment books a slot through the scheduling guard.
func (c *Controller) CreateAppointment(ctx context.Context, a *model.Appointment) (int64, error) {
	if err := c.require(auth.PermAppointmentsCreate); err != nil {
		return 0, err
	}
	return c.guard.Create(ctx, a)
}

func (c *Controller) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	if err := c.require(auth.PermAppointmentsView); err != nil {
		return nil, err
	}
	a, err := c.store.AppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "appointment not found")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load appointment", err)
	}
	return a, nil
}

func (c *Controller) ListAppointments(ctx context.Context, f store.AppointmentFilter) ([]model.Appointment, error) {
	if err := c.require(auth.PermAppointmentsView); err != nil {
		return nil, err
	}
	appts, err := c.store.ListAppointments(ctx, f)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list appointments", err)
	}
	return appts, nil
}

// AppointmentsForDay is the agenda view: everything starting on that day.
func (c *Controller) AppointmentsForDay(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	if err := c.require(auth.PermAppointmentsView); err != nil {
		return nil, err
	}
	appts, err := c.store.AppointmentsForDay(ctx, day)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list appointments", err)
	}
	return appts, nil
}

func (c *Controller) CheckAvailability(ctx context.Context, clinicianID int64, startsAt time.Time) (bool, error) {
	if err := c.require(auth.PermAppointmentsView); err != nil {
		return false, err
	}
	return c.guard.CheckAvailability(ctx, clinicianID, startsAt)
}

func (c *Controller) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	if err := c.require(auth.PermAppointmentsEdit); err != nil {
		return err
	}
	return c.guard.Update(ctx, a)
}

func (c *Controller) CancelAppointment(ctx context.Context, id int64) error {
	if err := c.require(auth.PermAppointmentsEdit); err != nil {
		return err
	}
	return c.guard.Cancel(ctx, id)
}

func (c *Controller) CompleteAppointment(ctx context.Context, id int64) error {
	if err := c.require(auth.PermAppointmentsEdit); err != nil {
		return err
	}
	return c.guard.Complete(ctx, id)
}

func (c *Controller) DeleteAppointment(ctx context.Context, id int64) error {
	if err := c.require(auth.PermAppointmentsDelete); err != nil {
		return err
	}
	if err := c.store.DeleteAppointment(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fault.New(fault.KindNotFound, "appointment not found")
		case errors.Is(err, store.ErrForeignKey):
			return fault.New(fault.KindConflict, "appointment has a recorded consultation")
		}
		return fault.Wrap(fault.KindPersistence, "delete appointment", err)
	}
	return nil
}

func (c *Controller) CountAppointments(ctx context.Context, status string) (int64, error) {
	if err := c.require(auth.PermAppointmentsView); err != nil {
		return 0, err
	}
	n, err := c.store.CountAppointments(ctx, status)
	if err != nil {
		return 0, fault.Wrap(fault.KindPersistence, "count appointments", err)
	}
	return n, nil
}
