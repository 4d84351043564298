package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"practice-manager/internal/model"
)

const paymentColumns = `pay.id, pay.consultation_id, pay.amount, pay.method, pay.status, pay.paid_at,
	p.name, a.starts_at`

func (s *Store) paymentSelect() sq.SelectBuilder {
	return s.sq.
		Select(paymentColumns).
		From("payments pay").
		Join("consultations co ON co.id = pay.consultation_id").
		Join("appointments a ON a.id = co.appointment_id").
		Join("patients p ON p.id = a.patient_id")
}

func (s *Store) CreatePayment(ctx context.Context, p *model.Payment) (int64, error) {
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	return s.insertID(ctx, s.sq.
		Insert("payments").
		Columns("consultation_id", "amount", "method", "status", "paid_at").
		Values(p.ConsultationID, p.Amount, p.Method, p.Status, p.PaidAt))
}

func (s *Store) PaymentByID(ctx context.Context, id int64) (*model.Payment, error) {
	query, args, err := s.paymentSelect().Where(sq.Eq{"pay.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	p := &model.Payment{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.ConsultationID, &p.Amount, &p.Method, &p.Status, &p.PaidAt,
			&p.PatientName, &p.ConsultationDate)
	if err != nil {
		return nil, s.classify(err)
	}
	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, status string) ([]model.Payment, error) {
	b := s.paymentSelect().OrderBy("pay.paid_at DESC")
	if status != "" {
		b = b.Where(sq.Eq{"pay.status": status})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.classify(err)
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.ConsultationID, &p.Amount, &p.Method, &p.Status, &p.PaidAt,
			&p.PatientName, &p.ConsultationDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetPaymentStatus moves a payment to paid or cancelled, stamping the
// payment date on the transition to paid.
func (s *Store) SetPaymentStatus(ctx context.Context, id int64, status string) error {
	b := s.sq.
		Update("payments").
		Set("status", status).
		Where(sq.Eq{"id": id})
	if status == model.PaymentPaid {
		b = b.Set("paid_at", time.Now())
	}
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	n, err := s.exec(ctx, query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
