// Package schedule enforces appointment-slot exclusivity and the
// appointment status state machine.
//
// Availability is interval-based: an appointment occupies
// [StartsAt, EndsAt) and a clinician can hold at most one non-cancelled
// appointment over any instant. Status follows a closed transition table:
// scheduled may move to completed or cancelled; both are terminal.
package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"practice-manager/internal/fault"
	"practice-manager/internal/logger"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

// AppointmentStore is the slice of the persistence gateway the guard needs.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) (int64, error)
	AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error)
	UpdateAppointmentDetails(ctx context.Context, a *model.Appointment) error
	TransitionAppointment(ctx context.Context, id int64, from, to string) (bool, error)
	HasOverlap(ctx context.Context, clinicianID int64, start, end time.Time, excludeID int64) (bool, error)
}

type Guard struct {
	store      AppointmentStore
	log        *logger.Logger
	slotLength time.Duration

	// mu serializes the availability check with the following write. That
	// closes the check/insert race within this process; concurrent writers
	// from other processes are only stopped by a database-level constraint,
	// which the schema does not carry for intervals.
	mu sync.Mutex
}

func NewGuard(st AppointmentStore, log *logger.Logger, slotLength time.Duration) *Guard {
	if slotLength <= 0 {
		slotLength = time.Hour
	}
	return &Guard{store: st, log: log, slotLength: slotLength}
}

// SlotLength is the interval an appointment occupies when no explicit end
// time is supplied.
func (g *Guard) SlotLength() time.Duration { return g.slotLength }

// CheckAvailability reports whether the clinician is free for a full slot
// starting at startsAt.
func (g *Guard) CheckAvailability(ctx context.Context, clinicianID int64, startsAt time.Time) (bool, error) {
	taken, err := g.store.HasOverlap(ctx, clinicianID, startsAt, startsAt.Add(g.slotLength), 0)
	if err != nil {
		return false, fault.Wrap(fault.KindPersistence, "check availability", err)
	}
	return !taken, nil
}

// Create validates the appointment, checks the clinician's availability and
// inserts it as scheduled, returning the generated identifier.
func (g *Guard) Create(ctx context.Context, a *model.Appointment) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if a.EndsAt.IsZero() {
		a.EndsAt = a.StartsAt.Add(g.slotLength)
	}
	if !a.EndsAt.After(a.StartsAt) {
		return 0, fault.New(fault.KindValidation, "end time must be after start time")
	}
	a.Status = model.StatusScheduled

	g.mu.Lock()
	defer g.mu.Unlock()

	taken, err := g.store.HasOverlap(ctx, a.ClinicianID, a.StartsAt, a.EndsAt, 0)
	if err != nil {
		return 0, fault.Wrap(fault.KindPersistence, "check availability", err)
	}
	if taken {
		return 0, fault.New(fault.KindConflict, "the clinician is not available at that time")
	}

	id, err := g.store.CreateAppointment(ctx, a)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return 0, fault.New(fault.KindValidation, "patient or clinician does not exist")
		}
		return 0, fault.Wrap(fault.KindPersistence, "create appointment", err)
	}
	a.ID = id

	g.log.Info().Int64("appointment_id", id).Int64("clinician_id", a.ClinicianID).
		Time("starts_at", a.StartsAt).Msg("appointment scheduled")
	return id, nil
}

// Update re-validates and overwrites the mutable fields. The target slot is
// re-checked with the appointment's own row excluded, so moving within the
// original slot stays legal. Only scheduled appointments can be rescheduled.
func (g *Guard) Update(ctx context.Context, a *model.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.EndsAt.IsZero() {
		a.EndsAt = a.StartsAt.Add(g.slotLength)
	}
	if !a.EndsAt.After(a.StartsAt) {
		return fault.New(fault.KindValidation, "end time must be after start time")
	}

	current, err := g.store.AppointmentByID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "appointment not found")
		}
		return fault.Wrap(fault.KindPersistence, "load appointment", err)
	}
	if current.Status != model.StatusScheduled {
		return fault.Newf(fault.KindConflict, "a %s appointment cannot be rescheduled", current.Status)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	taken, err := g.store.HasOverlap(ctx, a.ClinicianID, a.StartsAt, a.EndsAt, a.ID)
	if err != nil {
		return fault.Wrap(fault.KindPersistence, "check availability", err)
	}
	if taken {
		return fault.New(fault.KindConflict, "the clinician is not available at that time")
	}

	if err := g.store.UpdateAppointmentDetails(ctx, a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "appointment not found")
		}
		if errors.Is(err, store.ErrForeignKey) {
			return fault.New(fault.KindValidation, "patient or clinician does not exist")
		}
		return fault.Wrap(fault.KindPersistence, "update appointment", err)
	}
	return nil
}

// Cancel moves a scheduled appointment to cancelled.
func (g *Guard) Cancel(ctx context.Context, id int64) error {
	return g.transition(ctx, id, model.StatusCancelled)
}

// Complete moves a scheduled appointment to completed.
func (g *Guard) Complete(ctx context.Context, id int64) error {
	return g.transition(ctx, id, model.StatusCompleted)
}

func (g *Guard) transition(ctx context.Context, id int64, to string) error {
	moved, err := g.store.TransitionAppointment(ctx, id, model.StatusScheduled, to)
	if err != nil {
		return fault.Wrap(fault.KindPersistence, "update appointment status", err)
	}
	if moved {
		g.log.Info().Int64("appointment_id", id).Str("status", to).Msg("appointment transitioned")
		return nil
	}

	// nothing changed: missing row or a terminal state
	current, err := g.store.AppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.New(fault.KindNotFound, "appointment not found")
		}
		return fault.Wrap(fault.KindPersistence, "load appointment", err)
	}
	return fault.Newf(fault.KindConflict, "appointment is already %s", current.Status)
}
