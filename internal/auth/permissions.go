package auth

import "practice-manager/internal/model"

// Permission tokens. Each names one allowed action; roles map to sets of
// them. The table is fixed at compile time and immutable at runtime.
const (
	PermUsersCreate = "users_create"
	PermUsersEdit   = "users_edit"
	PermUsersDelete = "users_delete"
	PermUsersView   = "users_view"

	PermPatientsCreate = "patients_create"
	PermPatientsEdit   = "patients_edit"
	PermPatientsDelete = "patients_delete"
	PermPatientsView   = "patients_view"

	PermCliniciansCreate = "clinicians_create"
	PermCliniciansEdit   = "clinicians_edit"
	PermCliniciansDelete = "clinicians_delete"
	PermCliniciansView   = "clinicians_view"

	PermAppointmentsCreate = "appointments_create"
	PermAppointmentsEdit   = "appointments_edit"
	PermAppointmentsDelete = "appointments_delete"
	PermAppointmentsView   = "appointments_view"

	PermConsultationsCreate = "consultations_create"
	PermConsultationsEdit   = "consultations_edit"
	PermConsultationsView   = "consultations_view"

	PermPaymentsCreate = "payments_create"
	PermPaymentsEdit   = "payments_edit"
	PermPaymentsView   = "payments_view"

	PermHistoryView = "history_view"
	PermHistoryEdit = "history_edit"

	PermReportsView     = "reports_view"
	PermReportsGenerate = "reports_generate"
	PermSettingsAccess  = "settings_access"
)

var rolePermissions = map[string]map[string]struct{}{
	model.RoleAdministrator: permSet(
		PermUsersCreate, PermUsersEdit, PermUsersDelete, PermUsersView,
		PermPatientsCreate, PermPatientsEdit, PermPatientsDelete, PermPatientsView,
		PermCliniciansCreate, PermCliniciansEdit, PermCliniciansDelete, PermCliniciansView,
		PermAppointmentsCreate, PermAppointmentsEdit, PermAppointmentsDelete, PermAppointmentsView,
		PermConsultationsCreate, PermConsultationsEdit, PermConsultationsView,
		PermPaymentsCreate, PermPaymentsEdit, PermPaymentsView,
		PermHistoryView, PermHistoryEdit,
		PermReportsView, PermReportsGenerate,
		PermSettingsAccess,
	),
	model.RoleClinician: permSet(
		PermAppointmentsView,
		PermConsultationsCreate, PermConsultationsView,
		PermPatientsView,
		PermHistoryView,
	),
}

func permSet(tokens ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// RoleHasPermission reports whether role's permission set contains token.
// Unknown roles have no permissions.
func RoleHasPermission(role, token string) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[token]
	return ok
}

// PermissionsForRole returns a copy of the role's permission set, sorted
// input order not guaranteed.
func PermissionsForRole(role string) []string {
	set, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}
