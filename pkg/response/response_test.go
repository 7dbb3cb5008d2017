package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAppError_Error(t *testing.T) {
	err := NewNotFound("workspace not found")
	if err.Error() != "workspace not found" {
		t.Errorf("Error() = %q, expected %q", err.Error(), "workspace not found")
	}
}

func TestErrorConstructors_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"invalid input", NewInvalidInput("bad"), http.StatusBadRequest},
		{"unauthenticated", NewUnauthenticated("no session"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), http.StatusForbidden},
		{"not found", NewNotFound("missing"), http.StatusNotFound},
		{"conflict", NewConflict("duplicate"), http.StatusConflict},
		{"server error", NewServerError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, expected %d", tt.err.HTTPStatus, tt.status)
			}
		})
	}
}

func TestError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, NewConflict("connection already exists"))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusConflict)
	}

	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "connection already exists" {
		t.Errorf("error = %q, expected %q", body.Error, "connection already exists")
	}
}

func TestError_GenericErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, &testError{"pq: duplicate key value violates unique constraint"})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusInternalServerError)
	}

	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal error text leaked to client: %q", body.Error)
	}
}

func TestInvalidInput_Details(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InvalidInput(c, "invalid input",
		FieldError{Field: "content", Message: "must be between 1 and 1000 characters"},
		FieldError{Field: "type", Message: "must be one of TEXT, IMAGE, FILE, SYSTEM"},
	)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusBadRequest)
	}

	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(body.Details) != 2 {
		t.Fatalf("details count = %d, expected 2", len(body.Details))
	}
	if body.Details[0].Field != "content" {
		t.Errorf("details[0].field = %q, expected %q", body.Details[0].Field, "content")
	}
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"setupRequired": true})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusOK)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["setupRequired"] != true {
		t.Errorf("setupRequired = %v, expected true", body["setupRequired"])
	}
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, gin.H{"connection": gin.H{"id": 1}})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusCreated)
	}
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
