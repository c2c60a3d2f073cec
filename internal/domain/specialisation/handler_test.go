package specialisation

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

type stubDoctors struct {
	carrying bool
}

func (s *stubDoctors) AnyWithSpecialisation(_ context.Context, _ int64) (bool, error) {
	return s.carrying, nil
}

func newTestHandler() (*Handler, *echo.Echo, *stubDoctors) {
	svc, _ := newTestService()
	doctors := &stubDoctors{}
	return NewHandler(svc, doctors), echo.New(), doctors
}

func TestHandler_CreateSpecialisation(t *testing.T) {
	h, e, _ := newTestHandler()

	body := `{"name":"Surgery","minSalary":4000,"maxSalary":9000}`
	req := httptest.NewRequest(http.MethodPost, "/api/specialisations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateSpecialisation(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var spec Specialisation
	json.Unmarshal(rec.Body.Bytes(), &spec)
	if spec.Name != "Surgery" || spec.MinSalary == nil || *spec.MinSalary != 4000 {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	wantHeader := "/api/specialisations/" + strconv.FormatInt(spec.ID, 10)
	if got := rec.Header().Get(echo.HeaderLocation); got != wantHeader {
		t.Errorf("expected Location header %s, got %s", wantHeader, got)
	}
}

func TestHandler_CreateSpecialisation_BlankName(t *testing.T) {
	h, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/specialisations", strings.NewReader(`{"minSalary":4000}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateSpecialisation(c)
	var validation *apperr.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestHandler_CreateSpecialisation_WhitespaceName(t *testing.T) {
	h, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/specialisations", strings.NewReader(`{"name":" \t "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateSpecialisation(c)
	var validation *apperr.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestHandler_DeleteSpecialisation_Guarded(t *testing.T) {
	h, e, doctors := newTestHandler()

	spec, _ := h.svc.Create(context.Background(), &Specialisation{Name: "Surgery"})
	doctors.carrying = true

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(spec.ID, 10))

	err := h.DeleteSpecialisation(c)
	var conflict *apperr.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	if _, err := h.svc.Get(context.Background(), spec.ID); err != nil {
		t.Errorf("specialisation should still exist: %v", err)
	}
}

func TestHandler_DeleteSpecialisation_Absent(t *testing.T) {
	h, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := h.DeleteSpecialisation(c)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestHandler_PatchSpecialisation(t *testing.T) {
	h, e, _ := newTestHandler()

	spec, _ := h.svc.Create(context.Background(), &Specialisation{Name: "Surgery"})

	body := `{"maxSalary":9000}`
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(spec.ID, 10))

	if err := h.PatchSpecialisation(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	got, _ := h.svc.Get(context.Background(), spec.ID)
	if got.MaxSalary == nil || *got.MaxSalary != 9000 || got.Name != "Surgery" {
		t.Errorf("unexpected state after patch: %+v", got)
	}
}
