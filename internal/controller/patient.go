package controller

import (
	"context"
	"errors"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

func (c *Controller) CreatePatient(ctx context.Context, p *model.Patient) (int64, error) {
	if err := c.require(auth.PermPatientsCreate); err != nil {
		return 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	id, err := c.store.CreatePatient(ctx, p)
	if err != nil {
		return 0, fault.Wrap(fault.KindPersistence, "create patient", err)
	}
	p.ID = id
	return id, nil
}

func (c *Controller) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	if err := c.require(auth.PermPatientsView); err != nil {
		return nil, err
	}
	p, err := c.store.PatientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "patient not found")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load patient", err)
	}
	return p, nil
}

func (c *Controller) ListPatients(ctx context.Context, nameLike string) ([]model.Patient, error) {
	if err := c.require(auth.PermPatientsView); err != nil {
		return nil, err
	}
	patients, err := c.store.ListPatients(ctx, nameLike)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list patients", err)
	}
	return patients, nil
}

func (c *Controller) UpdatePatient(ctx context.Context, p *model.Patient) error {
	if err := c.require(auth.PermPatientsEdit); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := c.store.UpdatePatient(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "patient not found")
		}
		return fault.Wrap(fault.KindPersistence, "update patient", err)
	}
	return nil
}

func (c *Controller) DeletePatient(ctx context.Context, id int64) error {
	if err := c.require(auth.PermPatientsDelete); err != nil {
		return err
	}
	if err := c.store.DeletePatient(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fault.New(fault.KindNotFound, "patient not found")
		case errors.Is(err, store.ErrForeignKey):
			return fault.New(fault.KindConflict, "patient has related records")
		}
		return fault.Wrap(fault.KindPersistence, "delete patient", err)
	}
	return nil
}
