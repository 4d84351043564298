package controller

import (
	"context"
	"errors"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

// OpenHistory creates the clinical history for a patient; each patient has
// at most one.
func (c *Controller) OpenHistory(ctx context.Context, h *model.ClinicalHistory) (int64, error) {
	if err := c.require(auth.PermHistoryEdit); err != nil {
		return 0, err
	}
	if err := h.Validate(); err != nil {
		return 0, err
	}
	id, err := c.store.CreateHistory(ctx, h)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return 0, fault.New(fault.KindConflict, "the patient already has a clinical history")
		case errors.Is(err, store.ErrForeignKey):
			return 0, fault.New(fault.KindValidation, "patient does not exist")
		}
		return 0, fault.Wrap(fault.KindPersistence, "open clinical history", err)
	}
	h.ID = id
	return id, nil
}

func (c *Controller) GetHistory(ctx context.Context, patientID int64) (*model.ClinicalHistory, error) {
	if err := c.require(auth.PermHistoryView); err != nil {
		return nil, err
	}
	h, err := c.store.HistoryByPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "the patient has no clinical history")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load clinical history", err)
	}
	return h, nil
}

func (c *Controller) UpdateHistory(ctx context.Context, h *model.ClinicalHistory) error {
	if err := c.require(auth.PermHistoryEdit); err != nil {
		return err
	}
	if err := h.Validate(); err != nil {
		return err
	}
	if err := c.store.UpdateHistory(ctx, h); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "clinical history not found")
		}
		return fault.Wrap(fault.KindPersistence, "update clinical history", err)
	}
	return nil
}
