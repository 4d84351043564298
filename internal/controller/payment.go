package controller

import (
	"context"
	"errors"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

func (c *Controller) CreatePayment(ctx context.Context, p *model.Payment) (int64, error) {
	if err := c.require(auth.PermPaymentsCreate); err != nil {
		return 0, err
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	id, err := c.store.CreatePayment(ctx, p)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return 0, fault.New(fault.KindValidation, "consultation does not exist")
		}
		return 0, fault.Wrap(fault.KindPersistence, "create payment", err)
	}
	p.ID = id
	return id, nil
}

func (c *Controller) GetPayment(ctx context.Context, id int64) (*model.Payment, error) {
	if err := c.require(auth.PermPaymentsView); err != nil {
		return nil, err
	}
	p, err := c.store.PaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "payment not found")
		}
		return nil, fault.Wrap(fault.KindPersistence, "load payment", err)
	}
	return p, nil
}

func (c *Controller) ListPayments(ctx context.Context, status string) ([]model.Payment, error) {
	if err := c.require(auth.PermPaymentsView); err != nil {
		return nil, err
	}
	payments, err := c.store.ListPayments(ctx, status)
	if err != nil {
		return nil, fault.Wrap(fault.KindPersistence, "list payments", err)
	}
	return payments, nil
}

func (c *Controller) MarkPaymentPaid(ctx context.Context, id int64) error {
	return c.setPaymentStatus(ctx, id, model.PaymentPaid)
}

func (c *Controller) CancelPayment(ctx context.Context, id int64) error {
	return c.setPaymentStatus(ctx, id, model.PaymentCancelled)
}

func (c *Controller) setPaymentStatus(ctx context.Context, id int64, status string) error {
	if err := c.require(auth.PermPaymentsEdit); err != nil {
		return err
	}
	if err := c.store.SetPaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "payment not found")
		}
		return fault.Wrap(fault.KindPersistence, "update payment", err)
	}
	return nil
}
