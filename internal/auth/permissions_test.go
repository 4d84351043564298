package auth

import (
	"testing"

	"practice-manager/internal/model"
)

func TestRoleHasPermission(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		token string
		want  bool
	}{
		{"admin creates users", model.RoleAdministrator, PermUsersCreate, true},
		{"admin deletes patients", model.RoleAdministrator, PermPatientsDelete, true},
		{"clinician views patients", model.RoleClinician, PermPatientsView, true},
		{"clinician records consultations", model.RoleClinician, PermConsultationsCreate, true},
		{"clinician cannot delete patients", model.RoleClinician, PermPatientsDelete, false},
		{"clinician cannot create users", model.RoleClinician, PermUsersCreate, false},
		{"clinician cannot access settings", model.RoleClinician, PermSettingsAccess, false},
		{"unknown role has nothing", "intern", PermAppointmentsView, false},
		{"unknown token", model.RoleAdministrator, "launch_rockets", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleHasPermission(tt.role, tt.token); got != tt.want {
				t.Fatalf("RoleHasPermission(%q, %q) = %v, want %v", tt.role, tt.token, got, tt.want)
			}
		})
	}
}

func TestPermissionsForRole(t *testing.T) {
	admin := PermissionsForRole(model.RoleAdministrator)
	clinician := PermissionsForRole(model.RoleClinician)

	if len(admin) <= len(clinician) {
		t.Fatalf("administrator set (%d) should be larger than clinician set (%d)", len(admin), len(clinician))
	}
	if PermissionsForRole("intern") != nil {
		t.Fatal("unknown role should return nil")
	}
}
