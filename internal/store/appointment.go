package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"practice-manager/internal/model"
)

// appointmentColumns are always read through the same three-way join so
// callers get patient/clinician names and the specialty in one trip.
const appointmentColumns = `a.id, a.patient_id, a.clinician_id, a.starts_at, a.ends_at,
	a.modality, a.status, a.created_at, a.updated_at,
	p.name, u.name, c.specialty`

func (s *Store) appointmentSelect() sq.SelectBuilder {
	return s.sq.
		Select(appointmentColumns).
		From("appointments a").
		Join("patients p ON p.id = a.patient_id").
		Join("clinicians c ON c.id = a.clinician_id").
		Join("users u ON u.id = c.user_id")
}

func scanAppointment(row interface{ Scan(...any) error }, a *model.Appointment) error {
	return row.Scan(
		&a.ID, &a.PatientID, &a.ClinicianID, &a.StartsAt, &a.EndsAt,
		&a.Modality, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.PatientName, &a.ClinicianName, &a.Specialty,
	)
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) (int64, error) {
	now := time.Now()
	return s.insertID(ctx, s.sq.
		Insert("appointments").
		Columns("patient_id", "clinician_id", "starts_at", "ends_at",
			"modality", "status", "created_at", "updated_at").
		Values(a.PatientID, a.ClinicianID, a.StartsAt, a.EndsAt,
			a.Modality, a.Status, now, now))
}

func (s *Store) AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query, args, err := s.appointmentSelect().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	a := &model.Appointment{}
	if err := scanAppointment(s.db.QueryRowContext(ctx, query, args...), a); err != nil {
		return nil, s.classify(err)
	}
	return a, nil
}

// AppointmentFilter narrows ListAppointments. Zero values mean "no filter".
type AppointmentFilter struct {
	From        time.Time
	To          time.Time
	PatientID   int64
	ClinicianID int64
	Status      string
}

func (s *Store) ListAppointments(ctx context.Context, f AppointmentFilter) ([]model.Appointment, error) {
	b := s.appointmentSelect().OrderBy("a.starts_at DESC")
	if !f.From.IsZero() {
		b = b.Where(sq.GtOrEq{"a.starts_at": f.From})
	}
	if !f.To.IsZero() {
		b = b.Where(sq.Lt{"a.starts_at": f.To})
	}
	if f.PatientID != 0 {
		b = b.Where(sq.Eq{"a.patient_id": f.PatientID})
	}
	if f.ClinicianID != 0 {
		b = b.Where(sq.Eq{"a.clinician_id": f.ClinicianID})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"a.status": f.Status})
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

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// HasOverlap reports whether the clinician already has a non-cancelled
// appointment intersecting [start, end). excludeID skips the appointment
// being rescheduled.
func (s *Store) HasOverlap(ctx context.Context, clinicianID int64, start, end time.Time, excludeID int64) (bool, error) {
	b := s.sq.
		Select("1").
		From("appointments").
		Where(sq.Eq{"clinician_id": clinicianID}).
		Where(sq.NotEq{"status": model.StatusCancelled}).
		Where(sq.Lt{"starts_at": end}).
		Where(sq.Gt{"ends_at": start})
	if excludeID != 0 {
		b = b.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := b.Prefix("SELECT EXISTS(").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, s.classify(err)
	}
	return exists, nil
}

// UpdateAppointmentDetails overwrites the mutable fields of a scheduled
// appointment. Status changes go through TransitionAppointment.
func (s *Store) UpdateAppointmentDetails(ctx context.Context, a *model.Appointment) error {
	query, args, err := s.sq.
		Update("appointments").
		Set("patient_id", a.PatientID).
		Set("clinician_id", a.ClinicianID).
		Set("starts_at", a.StartsAt).
		Set("ends_at", a.EndsAt).
		Set("modality", a.Modality).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": a.ID}).
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

// TransitionAppointment moves an appointment from one status to another in
// a single guarded UPDATE. It reports whether a row changed; zero rows
// means the appointment is missing or not in the expected state, which the
// caller distinguishes with a follow-up read.
func (s *Store) TransitionAppointment(ctx context.Context, id int64, from, to string) (bool, error) {
	query, args, err := s.sq.
		Update("appointments").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, err
	}
	n, err := s.exec(ctx, query, args)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	query, args, err := s.sq.Delete("appointments").Where(sq.Eq{"id": id}).ToSql()
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

// AppointmentsForDay lists the appointments starting on the given local day.
func (s *Store) AppointmentsForDay(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.ListAppointments(ctx, AppointmentFilter{From: start, To: start.AddDate(0, 0, 1)})
}

func (s *Store) CountAppointments(ctx context.Context, status string) (int64, error) {
	b := s.sq.Select("COUNT(*)").From("appointments")
	if status != "" {
		b = b.Where(sq.Eq{"status": status})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, s.classify(err)
	}
	return n, nil
}
