package policy

import "testing"

func TestAuthorize_CapabilityMatrix(t *testing.T) {
	cases := []struct {
		role  string
		op    Operation
		allow bool
	}{
		{"admin", RegisterPersonnel, true},
		{"personnel", RegisterPersonnel, false},
		{"patient", RegisterPersonnel, false},

		{"admin", RegisterPatient, true},
		{"personnel", RegisterPatient, true},
		{"patient", RegisterPatient, false},

		{"personnel", CreateCatalogEntry, true},
		{"patient", CreateCatalogEntry, false},
		{"patient", ReadCatalog, true},

		{"personnel", CreateUserTest, true},
		{"patient", CreateUserTest, false},
		{"patient", ReadUserTests, true},
		{"patient", UpdateUserTest, false},
		{"patient", DeleteUserTest, false},

		{"personnel", CreateAppointment, true},
		{"patient", CreateAppointment, false},
		{"patient", ReadAppointments, true},

		{"patient", ReadUsers, true},
		{"patient", ReadSelf, true},

		{"", ReadCatalog, false},
		{"ghost", ReadCatalog, false},
		{"admin", Operation("unknown-op"), false},
	}

	for _, tc := range cases {
		err := Authorize(tc.role, tc.op)
		if tc.allow && err != nil {
			t.Errorf("Authorize(%q, %q): expected allow, got %v", tc.role, tc.op, err)
		}
		if !tc.allow && err != ErrForbidden {
			t.Errorf("Authorize(%q, %q): expected ErrForbidden, got %v", tc.role, tc.op, err)
		}
	}
}

func TestAuthorizeOwner_PatientCrossOwnerDenied(t *testing.T) {
	if err := AuthorizeOwner("patient", ReadUserTests, 7, 7); err != nil {
		t.Fatalf("patient reading own tests: %v", err)
	}
	if err := AuthorizeOwner("patient", ReadUserTests, 7, 8); err != ErrForbidden {
		t.Fatalf("patient reading another owner: expected ErrForbidden, got %v", err)
	}
}

func TestAuthorizeOwner_StaffReadAnyOwner(t *testing.T) {
	for _, role := range []string{"admin", "personnel"} {
		if err := AuthorizeOwner(role, ReadUserTests, 1, 99); err != nil {
			t.Fatalf("%s reading any owner: %v", role, err)
		}
	}
}
