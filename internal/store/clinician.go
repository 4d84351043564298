package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"practice-manager/internal/model"
)

const clinicianColumns = `c.id, c.user_id, c.specialty, c.experience_years, c.license_number,
	u.name, u.email`

func (s *Store) clinicianSelect() sq.SelectBuilder {
	return s.sq.
		Select(clinicianColumns).
		From("clinicians c").
		Join("users u ON u.id = c.user_id")
}

func (s *Store) CreateClinician(ctx context.Context, c *model.Clinician) (int64, error) {
	return s.insertID(ctx, s.sq.
		Insert("clinicians").
		Columns("user_id", "specialty", "experience_years", "license_number").
		Values(c.UserID, c.Specialty, c.Experience, c.LicenseNumber))
}

func (s *Store) ClinicianByID(ctx context.Context, id int64) (*model.Clinician, error) {
	return s.scanClinician(ctx, sq.Eq{"c.id": id})
}

// ClinicianByUserID resolves the clinician row owned by a user account,
// which is how a logged-in clinician finds their own schedule.
func (s *Store) ClinicianByUserID(ctx context.Context, userID int64) (*model.Clinician, error) {
	return s.scanClinician(ctx, sq.Eq{"c.user_id": userID})
}

func (s *Store) scanClinician(ctx context.Context, where sq.Eq) (*model.Clinician, error) {
	query, args, err := s.clinicianSelect().Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	c := &model.Clinician{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.UserID, &c.Specialty, &c.Experience, &c.LicenseNumber, &c.Name, &c.Email)
	if err != nil {
		return nil, s.classify(err)
	}
	return c, nil
}

func (s *Store) ListClinicians(ctx context.Context, specialty string) ([]model.Clinician, error) {
	b := s.clinicianSelect().OrderBy("u.name")
	if specialty != "" {
		b = b.Where(sq.Eq{"c.specialty": specialty})
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

	var out []model.Clinician
	for rows.Next() {
		var c model.Clinician
		if err := rows.Scan(&c.ID, &c.UserID, &c.Specialty, &c.Experience, &c.LicenseNumber, &c.Name, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateClinician(ctx context.Context, c *model.Clinician) error {
	query, args, err := s.sq.
		Update("clinicians").
		Set("specialty", c.Specialty).
		Set("experience_years", c.Experience).
		Set("license_number", c.LicenseNumber).
		Where(sq.Eq{"id": c.ID}).
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

func (s *Store) DeleteClinician(ctx context.Context, id int64) error {
	query, args, err := s.sq.Delete("clinicians").Where(sq.Eq{"id": id}).ToSql()
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
