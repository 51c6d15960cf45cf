package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
)

// TestEndToEnd walks the whole flow: admin provisions personnel, the
// personnel logs in with their issued number, registers a patient,
// defines a catalog test, orders it, completes it, and the final
// listing shows exactly that.
func TestEndToEnd(t *testing.T) {
	r := setupServer(t, "api_e2e")

	// Admin logs in
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"type": "userNumber", "identifier": "ADMIN001", "password": "admin123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: %d (%s)", w.Code, w.Body.String())
	}
	adminTok := decode(t, w)["token"].(string)

	// Admin registers personnel
	w = doJSON(t, r, http.MethodPost, "/api/auth/register-personnel", adminTok, map[string]interface{}{
		"firstName": "John", "lastName": "Personnel", "email": "john@lab.com",
		"password": "personnel123", "phone": "555-0100",
		"dateOfBirth": "1985-01-01", "gender": "male",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register personnel: %d (%s)", w.Code, w.Body.String())
	}
	perNumber := decode(t, w)["user"].(map[string]interface{})["userNumber"].(string)

	// Personnel logs in with the issued number
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"type": "userNumber", "identifier": perNumber, "password": "personnel123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("personnel login: %d (%s)", w.Code, w.Body.String())
	}
	perTok := decode(t, w)["token"].(string)

	// Personnel registers a patient with a new unique phone
	w = doJSON(t, r, http.MethodPost, "/api/auth/register-patient", perTok, map[string]interface{}{
		"firstName": "Maria", "lastName": "Gomez", "phone": "555-0200",
		"dateOfBirth": "1990-03-15", "gender": "female",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register patient: %d (%s)", w.Code, w.Body.String())
	}
	patID := uint(decode(t, w)["user"].(map[string]interface{})["id"].(float64))

	// Personnel creates a biochemistry catalog entry
	w = doJSON(t, r, http.MethodPost, "/api/test-catalog", perTok, map[string]interface{}{
		"name": "Blood Glucose", "category": "biochemistry",
		"description":             "Measures blood sugar levels",
		"preparationInstructions": "Fasting required",
		"normalRange":             "70-100 mg/dL",
		"price":                   15.0,
		"estimatedDuration":       1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create catalog entry: %d (%s)", w.Code, w.Body.String())
	}
	entryID := uint(decode(t, w)["test"].(map[string]interface{})["ID"].(float64))

	// Order the test for the patient
	w = doJSON(t, r, http.MethodPost, "/api/user-tests", perTok, map[string]interface{}{
		"userId": patID, "testCatalogId": entryID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d (%s)", w.Code, w.Body.String())
	}
	orderID := uint(decode(t, w)["test"].(map[string]interface{})["ID"].(float64))

	// Complete it
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/user-tests/%d", orderID), perTok,
		map[string]interface{}{"status": "completed"})
	if w.Code != http.StatusOK {
		t.Fatalf("complete order: %d (%s)", w.Code, w.Body.String())
	}

	// One entry, status completed
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/user-tests?userId=%d", patID), perTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list orders: %d (%s)", w.Code, w.Body.String())
	}
	rows := decode(t, w)["tests"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 order, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["status"] != "completed" || row["testName"] != "Blood Glucose" {
		t.Fatalf("unexpected final order: %v", row)
	}
}
