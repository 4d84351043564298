package model

import (
	"strings"
	"testing"
	"time"

	"practice-manager/internal/fault"
)

func wantValidation(t *testing.T, err error) {
	t.Helper()
	if !fault.IsKind(err, fault.KindValidation) {
		t.Fatalf("want validation fault, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{Name: "Ana Silva", Email: "ana@clinic.example", Role: RoleClinician}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*User)
	}{
		{"blank name", func(u *User) { u.Name = "   " }},
		{"bad email", func(u *User) { u.Email = "not-an-email" }},
		{"unknown role", func(u *User) { u.Role = "receptionist" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			wantValidation(t, u.Validate())
		})
	}
}

func TestPatientValidate(t *testing.T) {
	valid := Patient{Name: "Bruno Costa", Phone: "5511987654321", Email: "bruno@mail.example"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid patient rejected: %v", err)
	}

	t.Run("short phone", func(t *testing.T) {
		p := valid
		p.Phone = "12345"
		wantValidation(t, p.Validate())
	})
	t.Run("email optional", func(t *testing.T) {
		p := valid
		p.Email = ""
		if err := p.Validate(); err != nil {
			t.Fatalf("empty email should pass: %v", err)
		}
	})
	t.Run("bad email when present", func(t *testing.T) {
		p := valid
		p.Email = "nope"
		wantValidation(t, p.Validate())
	})
}

func TestClinicianValidate(t *testing.T) {
	valid := Clinician{UserID: 1, Specialty: "Cardiology", LicenseNumber: "CRM-12345"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid clinician rejected: %v", err)
	}
	t.Run("short license", func(t *testing.T) {
		c := valid
		c.LicenseNumber = "1234"
		wantValidation(t, c.Validate())
	})
}

func TestAppointmentValidate(t *testing.T) {
	starts := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	valid := Appointment{PatientID: 1, ClinicianID: 2, StartsAt: starts, Modality: ModalityInPerson}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid appointment rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Appointment)
	}{
		{"no patient", func(a *Appointment) { a.PatientID = 0 }},
		{"no clinician", func(a *Appointment) { a.ClinicianID = 0 }},
		{"no start", func(a *Appointment) { a.StartsAt = time.Time{} }},
		{"bad modality", func(a *Appointment) { a.Modality = "telepathy" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			wantValidation(t, a.Validate())
		})
	}
}

func TestConsultationValidate(t *testing.T) {
	valid := Consultation{AppointmentID: 1, DurationMinutes: 45, Notes: "follow-up in two weeks"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid consultation rejected: %v", err)
	}
	t.Run("notes too long", func(t *testing.T) {
		c := valid
		c.Notes = strings.Repeat("x", 201)
		wantValidation(t, c.Validate())
	})
	t.Run("duration out of range", func(t *testing.T) {
		c := valid
		c.DurationMinutes = 301
		wantValidation(t, c.Validate())
	})
}

func TestPaymentValidate(t *testing.T) {
	valid := Payment{ConsultationID: 1, Amount: 150.0, Method: PaymentCard}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid payment rejected: %v", err)
	}
	t.Run("zero amount", func(t *testing.T) {
		p := valid
		p.Amount = 0
		wantValidation(t, p.Validate())
	})
	t.Run("unknown method", func(t *testing.T) {
		p := valid
		p.Method = "barter"
		wantValidation(t, p.Validate())
	})
}

func TestClinicalHistoryAppend(t *testing.T) {
	h := ClinicalHistory{PatientID: 1}
	h.AppendAllergy("penicillin")
	h.AppendAllergy("latex")
	if h.Allergies != "penicillin; latex" {
		t.Fatalf("allergies = %q", h.Allergies)
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("valid history rejected: %v", err)
	}

	h.Background = strings.Repeat("b", 151)
	wantValidation(t, h.Validate())
}
