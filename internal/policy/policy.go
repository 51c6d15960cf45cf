// Package policy is the single authorization evaluator. Every protected
// handler asks it before touching storage, so a deny is decided without
// revealing whether the resource exists.
package policy

import "errors"

// ErrForbidden is the uniform policy denial. It is distinct from a
// missing/invalid token (middleware, 401) and from an absent resource
// (404); the three are never collapsed.
var ErrForbidden = errors.New("insufficient permissions")

// Operation names a protected action.
type Operation string

const (
	RegisterPersonnel Operation = "register-personnel"
	RegisterPatient   Operation = "register-patient"

	CreateCatalogEntry Operation = "create-catalog-entry"
	UpdateCatalogEntry Operation = "update-catalog-entry"
	DeleteCatalogEntry Operation = "delete-catalog-entry"
	ReadCatalog        Operation = "read-catalog"

	CreateUserTest Operation = "create-user-test"
	UpdateUserTest Operation = "update-user-test"
	DeleteUserTest Operation = "delete-user-test"
	ReadUserTests  Operation = "read-user-tests"

	CreateAppointment Operation = "create-appointment"
	UpdateAppointment Operation = "update-appointment"
	ReadAppointments  Operation = "read-appointments"

	ReadUsers Operation = "read-users"
	ReadSelf  Operation = "read-self"
)

// capabilities lists the roles allowed per operation. Operations absent
// from the map are denied for everyone.
var capabilities = map[Operation]map[string]bool{
	RegisterPersonnel: {"admin": true},
	RegisterPatient:   {"admin": true, "personnel": true},

	CreateCatalogEntry: {"admin": true, "personnel": true},
	UpdateCatalogEntry: {"admin": true, "personnel": true},
	DeleteCatalogEntry: {"admin": true, "personnel": true},
	ReadCatalog:        {"admin": true, "personnel": true, "patient": true},

	CreateUserTest: {"admin": true, "personnel": true},
	UpdateUserTest: {"admin": true, "personnel": true},
	DeleteUserTest: {"admin": true, "personnel": true},
	ReadUserTests:  {"admin": true, "personnel": true, "patient": true},

	CreateAppointment: {"admin": true, "personnel": true},
	UpdateAppointment: {"admin": true, "personnel": true},
	ReadAppointments:  {"admin": true, "personnel": true, "patient": true},

	ReadUsers: {"admin": true, "personnel": true, "patient": true},
	ReadSelf:  {"admin": true, "personnel": true, "patient": true},
}

// Authorize decides whether a role may perform op.
func Authorize(role string, op Operation) error {
	if capabilities[op][role] {
		return nil
	}
	return ErrForbidden
}

// AuthorizeOwner additionally enforces that a patient only reaches
// records it owns. The check runs before any lookup: a patient asking
// for another owner is denied whether or not that owner exists.
func AuthorizeOwner(role string, op Operation, callerID, ownerID uint) error {
	if err := Authorize(role, op); err != nil {
		return err
	}
	if role == "patient" && callerID != ownerID {
		return ErrForbidden
	}
	return nil
}
