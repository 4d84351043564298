package controller

import (
	"context"
	"errors"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

// CreateClinician attaches professional data to an existing user account.
func (c *Controller) CreateClinician(ctx context.Context, cl *model.Clinician) (int64, error) {
	if err := c.require(auth.PermCliniciansCreate); err != nil {
		return 0, err
	}
	if err := cl.Validate(); err != nil {
		return 0, err
	}
	id, err := c.store.CreateClinician(ctx, cl)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return 0, fault.New(fault.KindConflict, "that user is already a clinician")
		case errors.Is(err, store.ErrForeignKey):
			return 0, fault.New(fault.KindValidation, "user account does not exist")
		}
		return 0, fault.Wrap(fault.KindPersistence, "create clinician", err)
	}
	cl.ID = id
	return id, nil
}

func (c *Controller) GetClinician(ctx context.Context, id int64) (*model.Clinician, error) {
	if err := c.require(auth.PermCliniciansView); err != nil {
		return nil, err
	}
	cl, err := c.store.ClinicianByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "clinician not found")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load clinician", err)
	}
	return cl, nil
}

func (c *Controller) ListClinicians(ctx context.Context, specialty string) ([]model.Clinician, error) {
	if err := c.require(auth.PermCliniciansView); err != nil {
		return nil, err
	}
	clinicians, err := c.store.ListClinicians(ctx, specialty)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list clinicians", err)
	}
	return clinicians, nil
}

func (c *Controller) UpdateClinician(ctx context.Context, cl *model.Clinician) error {
	if err := c.require(auth.PermCliniciansEdit); err != nil {
		return err
	}
	if err := cl.Validate(); err != nil {
		return err
	}
	if err := c.store.UpdateClinician(ctx, cl); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "clinician not found")
		}
		return fault.Wrap(fault.KindPersistence, "update clinician", err)
	}
	return nil
}

func (c *Controller) DeleteClinician(ctx context.Context, id int64) error {
	if err := c.require(auth.PermCliniciansDelete); err != nil {
		return err
	}
	if err := c.store.DeleteClinician(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fault.New(fault.KindNotFound, "clinician not found")
		case errors.Is(err, store.ErrForeignKey):
			return fault.New(fault.KindConflict, "clinician has related appointments")
		}
		return fault.Wrap(fault.KindPersistence, "delete clinician", err)
	}
	return nil
}

// MySchedule lists the appointments of the signed-in clinician.
func (c *Controller) MySchedule(ctx context.Context, f store.AppointmentFilter) ([]model.Appointment, error) {
	if err := c.require(auth.PermAppointmentsView); err != nil {
		return nil, err
	}
	cur := c.sess.CurrentUser()
	if cur == nil {
		return nil, fault.New(fault.KindUnauthorized, "no active session")
	}
	cl, err := c.store.ClinicianByUserID(ctx, cur.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "no clinician record for this account")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load clinician", err)
	}
	f.ClinicianID = cl.ID
	appts, err := c.store.ListAppointments(ctx, f)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list appointments", err)
	}
	return appts, nil
}
