package store

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"practice-manager/internal/model"
)

const patientColumns = "id, name, email, phone, address, registered_at"

func (s *Store) CreatePatient(ctx context.Context, p *model.Patient) (int64, error) {
	if p.RegisteredAt.IsZero() {
		p.RegisteredAt = time.Now()
	}
	return s.insertID(ctx, s.sq.
		Insert("patients").
		Columns("name", "email", "phone", "address", "registered_at").
		Values(p.Name, p.Email, p.Phone, p.Address, p.RegisteredAt))
}

func (s *Store) PatientByID(ctx context.Context, id int64) (*model.Patient, error) {
	query, args, err := s.sq.
		Select(patientColumns).
		From("patients").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	p := &model.Patient{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Address, &p.RegisteredAt)
	if err != nil {
		return nil, s.classify(err)
	}
	return p, nil
}

// ListPatients returns patients ordered by name, optionally narrowed to a
// case-insensitive name substring.
func (s *Store) ListPatients(ctx context.Context, nameLike string) ([]model.Patient, error) {
	b := s.sq.
		Select(patientColumns).
		From("patients").
		OrderBy("name")
	if nameLike != "" {
		b = b.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(nameLike)+"%")
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

	var out []model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Address, &p.RegisteredAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePatient(ctx context.Context, p *model.Patient) error {
	query, args, err := s.sq.
		Update("patients").
		Set("name", p.Name).
		Set("email", p.Email).
		Set("phone", p.Phone).
		Set("address", p.Address).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
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

func (s *Store) DeletePatient(ctx context.Context, id int64) error {
	query, args, err := s.sq.Delete("patients").Where(sq.Eq{"id": id}).ToSql()
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
