package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"practice-manager/internal/model"
)

const historyColumns = `h.id, h.patient_id, h.background, h.allergies, h.treatments, h.created_at,
	p.name`

func (s *Store) CreateHistory(ctx context.Context, h *model.ClinicalHistory) (int64, error) {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	return s.insertID(ctx, s.sq.
		Insert("clinical_histories").
		Columns("patient_id", "background", "allergies", "treatments", "created_at").
		Values(h.PatientID, h.Background, h.Allergies, h.Treatments, h.CreatedAt))
}

// HistoryByPatient returns the patient's clinical history; each patient has
// at most one.
func (s *Store) HistoryByPatient(ctx context.Context, patientID int64) (*model.ClinicalHistory, error) {
	query, args, err := s.sq.
		Select(historyColumns).
		From("clinical_histories h").
		Join("patients p ON p.id = h.patient_id").
		Where(sq.Eq{"h.patient_id": patientID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	h := &model.ClinicalHistory{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&h.ID, &h.PatientID, &h.Background, &h.Allergies, &h.Treatments, &h.CreatedAt,
			&h.PatientName)
	if err != nil {
		return nil, s.classify(err)
	}
	return h, nil
}

func (s *Store) UpdateHistory(ctx context.Context, h *model.ClinicalHistory) error {
	query, args, err := s.sq.
		Update("clinical_histories").
		Set("background", h.Background).
		Set("allergies", h.Allergies).
		Set("treatments", h.Treatments).
		Where(sq.Eq{"id": h.ID}).
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
