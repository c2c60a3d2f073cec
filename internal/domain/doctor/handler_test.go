package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medrest/medrest/pkg/apperr"
)

type stubChecker struct {
	kind  string
	known map[int64]bool
}

func (s *stubChecker) Exists(_ context.Context, id int64) error {
	if !s.known[id] {
		return apperr.NewNotFound(s.kind)
	}
	return nil
}

func newTestHandler() (*Handler, *echo.Echo, *stubChecker, *stubChecker) {
	svc, _ := newTestService()
	departments := &stubChecker{kind: "department", known: make(map[int64]bool)}
	specialisations := &stubChecker{kind: "specialisation", known: make(map[int64]bool)}
	return NewHandler(svc, departments, specialisations), echo.New(), departments, specialisations
}

func TestHandler_CreateDoctor(t *testing.T) {
	h, e, _, _ := newTestHandler()

	body := `{"name":"Popescu","salary":5000}`
	req := httptest.NewRequest(http.MethodPost, "/api/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var doc Doctor
	json.Unmarshal(rec.Body.Bytes(), &doc)
	if doc.Name != "Popescu" || doc.Salary == nil || *doc.Salary != 5000 {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	wantHeader := "/api/doctors/" + strconv.FormatInt(doc.ID, 10)
	if got := rec.Header().Get(echo.HeaderLocation); got != wantHeader {
		t.Errorf("expected Location header %s, got %s", wantHeader, got)
	}
}

func TestHandler_CreateDoctor_WhitespaceName(t *testing.T) {
	h, e, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/doctors", strings.NewReader(`{"name":"   "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateDoctor(c)
	var validation *apperr.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestHandler_AssignDoctorDepartment(t *testing.T) {
	h, e, departments, _ := newTestHandler()

	doc, _ := h.svc.Create(context.Background(), &Doctor{Name: "Popescu"})
	departments.known[3] = true

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("docId", "depId")
	c.SetParamValues(strconv.FormatInt(doc.ID, 10), "3")

	if err := h.AssignDoctorDepartment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	got, _ := h.svc.Get(context.Background(), doc.ID)
	if got.DepartmentID == nil || *got.DepartmentID != 3 {
		t.Errorf("department not assigned: %+v", got)
	}
}

func TestHandler_AssignDoctorDepartment_UnknownDepartment(t *testing.T) {
	h, e, _, _ := newTestHandler()

	doc, _ := h.svc.Create(context.Background(), &Doctor{Name: "Popescu"})

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("docId", "depId")
	c.SetParamValues(strconv.FormatInt(doc.ID, 10), "3")

	err := h.AssignDoctorDepartment(c)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != "department" {
		t.Errorf("expected kind department, got %s", notFound.Kind)
	}

	// The doctor must be left untouched.
	got, _ := h.svc.Get(context.Background(), doc.ID)
	if got.DepartmentID != nil {
		t.Errorf("failed assignment changed the doctor: %+v", got)
	}
}

func TestHandler_SetDoctorSpecialisation(t *testing.T) {
	h, e, _, specialisations := newTestHandler()

	doc, _ := h.svc.Create(context.Background(), &Doctor{Name: "Popescu"})
	specialisations.known[5] = true

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("docId", "specId")
	c.SetParamValues(strconv.FormatInt(doc.ID, 10), "5")

	if err := h.SetDoctorSpecialisation(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := h.svc.Get(context.Background(), doc.ID)
	if got.SpecialisationID == nil || *got.SpecialisationID != 5 {
		t.Errorf("specialisation not set: %+v", got)
	}
}

func TestHandler_SetDoctorSpecialisation_UnknownDoctor(t *testing.T) {
	h, e, _, specialisations := newTestHandler()

	specialisations.known[5] = true

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("docId", "specId")
	c.SetParamValues("42", "5")

	err := h.SetDoctorSpecialisation(c)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != "doctor" {
		t.Errorf("expected kind doctor, got %s", notFound.Kind)
	}
}

func TestHandler_DeleteDoctor(t *testing.T) {
	h, e, _, _ := newTestHandler()

	doc, _ := h.svc.Create(context.Background(), &Doctor{Name: "Popescu"})

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(doc.ID, 10))

	if err := h.DeleteDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
