package model

import (
	"strings"
	"time"

	"practice-manager/internal/fault"
)

// Roles a user account can hold. The set is closed; the permission table in
// internal/auth is keyed by these values.
const (
	RoleAdministrator = "administrator"
	RoleClinician     = "clinician"
)

// Appointment modalities.
const (
	ModalityInPerson = "in-person"
	ModalityRemote   = "remote"
)

// Appointment statuses. Completed and cancelled are terminal.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment methods and statuses.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"

	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	RegisteredAt time.Time
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fault.New(fault.KindValidation, "name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fault.New(fault.KindValidation, "email is not valid")
	}
	if u.Role != RoleAdministrator && u.Role != RoleClinician {
		return fault.New(fault.KindValidation, "role must be administrator or clinician")
	}
	return nil
}

type Patient struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Address      string
	RegisteredAt time.Time
}

func (p *Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fault.New(fault.KindValidation, "name is required")
	}
	if len(p.Phone) < 10 {
		return fault.New(fault.KindValidation, "phone must have at least 10 digits")
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return fault.New(fault.KindValidation, "email is not valid")
	}
	return nil
}

// Clinician extends a User row with professional data. Name and Email are
// joined in from the user on reads.
type Clinician struct {
	ID            int64
	UserID        int64
	Specialty     string
	Experience    int
	LicenseNumber string

	Name  string
	Email string
}

func (c *Clinician) Validate() error {
	if strings.TrimSpace(c.Specialty) == "" {
		return fault.New(fault.KindValidation, "specialty is required")
	}
	if len(c.LicenseNumber) < 8 {
		return fault.New(fault.KindValidation, "license number is not valid")
	}
	return nil
}

// Appointment is a scheduled meeting between one patient and one clinician.
// StartsAt/EndsAt bound the occupied interval; PatientName, ClinicianName
// and Specialty are joined in on reads.
type Appointment struct {
	ID          int64
	PatientID   int64
	ClinicianID int64
	StartsAt    time.Time
	EndsAt      time.Time
	Modality    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	PatientName   string
	ClinicianName string
	Specialty     string
}

func (a *Appointment) Validate() error {
	if a.PatientID == 0 {
		return fault.New(fault.KindValidation, "a patient must be selected")
	}
	if a.ClinicianID == 0 {
		return fault.New(fault.KindValidation, "a clinician must be selected")
	}
	if a.StartsAt.IsZero() {
		return fault.New(fault.KindValidation, "start time is required")
	}
	if a.Modality != ModalityInPerson && a.Modality != ModalityRemote {
		return fault.New(fault.KindValidation, "modality must be in-person or remote")
	}
	return nil
}

// Consultation records a held session for a completed appointment.
type Consultation struct {
	ID              int64
	AppointmentID   int64
	Notes           string
	DurationMinutes int
	Diagnosis       string
	Recommendations string

	AppointmentDate time.Time
	PatientName     string
	ClinicianName   string
}

func (c *Consultation) Validate() error {
	if c.AppointmentID == 0 {
		return fault.New(fault.KindValidation, "a consultation must reference an appointment")
	}
	if c.DurationMinutes < 0 || c.DurationMinutes > 300 {
		return fault.New(fault.KindValidation, "duration must be between 0 and 300 minutes")
	}
	if len(c.Notes) > 200 {
		return fault.New(fault.KindValidation, "notes must not exceed 200 characters")
	}
	if len(c.Diagnosis) > 150 {
		return fault.New(fault.KindValidation, "diagnosis must not exceed 150 characters")
	}
	if len(c.Recommendations) > 150 {
		return fault.New(fault.KindValidation, "recommendations must not exceed 150 characters")
	}
	return nil
}

type Payment struct {
	ID             int64
	ConsultationID int64
	Amount         float64
	Method         string
	Status         string
	PaidAt         time.Time

	PatientName      string
	ConsultationDate time.Time
}

func (p *Payment) Validate() error {
	if p.ConsultationID == 0 {
		return fault.New(fault.KindValidation, "a payment must reference a consultation")
	}
	if p.Amount <= 0 {
		return fault.New(fault.KindValidation, "amount must be greater than zero")
	}
	if p.Amount > 99999999.99 {
		return fault.New(fault.KindValidation, "amount exceeds the allowed maximum")
	}
	switch p.Method {
	case PaymentCash, PaymentCard, PaymentTransfer:
	default:
		return fault.New(fault.KindValidation, "payment method is not valid")
	}
	return nil
}

// ClinicalHistory holds the per-patient record. The Append helpers mirror
// how entries accumulate as semicolon-separated notes.
type ClinicalHistory struct {
	ID         int64
	PatientID  int64
	Background string
	Allergies  string
	Treatments string
	CreatedAt  time.Time

	PatientName string
}

func (h *ClinicalHistory) Validate() error {
	if h.PatientID == 0 {
		return fault.New(fault.KindValidation, "a history must reference a patient")
	}
	if len(h.Background) > 150 {
		return fault.New(fault.KindValidation, "background must not exceed 150 characters")
	}
	if len(h.Allergies) > 100 {
		return fault.New(fault.KindValidation, "allergies must not exceed 100 characters")
	}
	if len(h.Treatments) > 200 {
		return fault.New(fault.KindValidation, "treatments must not exceed 200 characters")
	}
	return nil
}

func (h *ClinicalHistory) AppendBackground(entry string) {
	h.Background = appendNote(h.Background, entry)
}

func (h *ClinicalHistory) AppendAllergy(entry string) {
	h.Allergies = appendNote(h.Allergies, entry)
}

func (h *ClinicalHistory) AppendTreatment(entry string) {
	h.Treatments = appendNote(h.Treatments, entry)
}

func appendNote(existing, entry string) string {
	if existing == "" {
		return entry
	}
	return existing + "; " + entry
}
