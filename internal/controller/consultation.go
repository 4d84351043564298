package controller

import (
	"context"
	"errors"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

// RecordConsultation stores the session notes for a held appointment and
// marks the appointment completed when it is still scheduled.
func (c *Controller) RecordConsultation(ctx context.Context, co *model.Consultation) (int64, error) {
	if err := c.require(auth.PermConsultationsCreate); err != nil {
		return 0, err
	}
	if err := co.Validate(); err != nil {
		return 0, err
	}

	id, err := c.store.CreateConsultation(ctx, co)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return 0, fault.New(fault.KindValidation, "appointment does not exist")
		}
		return 0, fault.Wrap(fault.KindPersistence, "record consultation", err)
	}
	co.ID = id

	// best effort: the appointment may already be completed
	if err := c.guard.Complete(ctx, co.AppointmentID); err != nil && !fault.IsKind(err, fault.KindConflict) {
		c.log.Warn().Err(err).Int64("appointment_id", co.AppointmentID).
			Msg("consultation recorded but appointment not completed")
	}
	return id, nil
}

func (c *Controller) GetConsultation(ctx context.Context, id int64) (*model.Consultation, error) {
	if err := c.require(auth.PermConsultationsView); err != nil {
		return nil, err
	}
	co, err := c.store.ConsultationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "consultation not found")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load consultation", err)
	}
	return co, nil
}

func (c *Controller) ListConsultations(ctx context.Context, patientID int64) ([]model.Consultation, error) {
	if err := c.require(auth.PermConsultationsView); err != nil {
		return nil, err
	}
	consultations, err := c.store.ListConsultations(ctx, patientID)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list consultations", err)
	}
	return consultations, nil
}

func (c *Controller) UpdateConsultation(ctx context.Context, co *model.Consultation) error {
	if err := c.require(auth.PermConsultationsEdit); err != nil {
		return err
	}
	if err := co.Validate(); err != nil {
		return err
	}
	if err := c.store.UpdateConsultation(ctx, co); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "consultation not found")
		}
		return fault.Wrap(fault.KindPersistence, "update consultation", err)
	}
	return nil
}
