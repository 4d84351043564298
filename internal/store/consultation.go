package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"practice-manager/internal/model"
)

const consultationColumns = `co.id, co.appointment_id, co.notes, co.duration_minutes,
	co.diagnosis, co.recommendations,
	a.starts_at, p.name, u.name`

func (s *Store) consultationSelect() sq.SelectBuilder {
	return s.sq.
		Select(consultationColumns).
		From("consultations co").
		Join("appointments a ON a.id = co.appointment_id").
		Join("patients p ON p.id = a.patient_id").
		Join("clinicians c ON c.id = a.clinician_id").
		Join("users u ON u.id = c.user_id")
}

func (s *Store) CreateConsultation(ctx context.Context, c *model.Consultation) (int64, error) {
	return s.insertID(ctx, s.sq.
		Insert("consultations").
		Columns("appointment_id", "notes", "duration_minutes", "diagnosis", "recommendations").
		Values(c.AppointmentID, c.Notes, c.DurationMinutes, c.Diagnosis, c.Recommendations))
}

func (s *Store) ConsultationByID(ctx context.Context, id int64) (*model.Consultation, error) {
	query, args, err := s.consultationSelect().Where(sq.Eq{"co.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	c := &model.Consultation{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.AppointmentID, &c.Notes, &c.DurationMinutes,
			&c.Diagnosis, &c.Recommendations,
			&c.AppointmentDate, &c.PatientName, &c.ClinicianName)
	if err != nil {
		return nil, s.classify(err)
	}
	return c, nil
}

func (s *Store) ListConsultations(ctx context.Context, patientID int64) ([]model.Consultation, error) {
	b := s.consultationSelect().OrderBy("a.starts_at DESC")
	if patientID != 0 {
		b = b.Where(sq.Eq{"a.patient_id": patientID})
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

	var out []model.Consultation
	for rows.Next() {
		var c model.Consultation
		if err := rows.Scan(&c.ID, &c.AppointmentID, &c.Notes, &c.DurationMinutes,
			&c.Diagnosis, &c.Recommendations,
			&c.AppointmentDate, &c.PatientName, &c.ClinicianName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateConsultation(ctx context.Context, c *model.Consultation) error {
	query, args, err := s.sq.
		Update("consultations").
		Set("notes", c.Notes).
		Set("duration_minutes", c.DurationMinutes).
		Set("diagnosis", c.Diagnosis).
		Set("recommendations", c.Recommendations).
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
