package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, fixture, *echo.Echo) {
	f := newFixture(t)
	return NewHandler(f.svc), f, echo.New()
}

func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func TestHandler_CreateAppointment(t *testing.T) {
	h, f, e := newTestHandler(t)

	body := fmt.Sprintf(`{"date":"10-03-2024","time":"09:30:00","patient":{"id":%d},"doctor":{"id":%d}}`, f.patient.ID, f.doctor.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var a Appointment
	json.Unmarshal(rec.Body.Bytes(), &a)
	if a.Patient.LastName != "Smith" {
		t.Errorf("expected embedded patient, got %+v", a.Patient)
	}
}

func TestHandler_CreateAppointment_UnknownDoctor(t *testing.T) {
	h, f, e := newTestHandler(t)

	body := fmt.Sprintf(`{"date":"10-03-2024","time":"09:30:00","patient":{"id":%d},"doctor":{"id":404}}`, f.patient.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if code := statusOf(h.CreateAppointment(c)); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_PatchAppointment(t *testing.T) {
	h, f, e := newTestHandler(t)
	a, _ := f.svc.Create(context.Background(), f.appointment("10-03-2024"))

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"time":"16:45:00"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(a.ID))

	if err := h.PatchAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Appointment
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Time != "16:45:00" {
		t.Errorf("expected patched time, got %s", got.Time)
	}
}

func TestHandler_DeleteAppointment_NotFound(t *testing.T) {
	h, _, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if code := statusOf(h.DeleteAppointment(c)); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_DoctorAppointments(t *testing.T) {
	h, f, e := newTestHandler(t)
	f.svc.Create(context.Background(), f.appointment("10-03-2024"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(f.doctor.ID))

	if err := h.DoctorAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []Appointment
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 1 {
		t.Errorf("expected 1 appointment, got %d", len(got))
	}
}

func TestHandler_SearchAppointments_BadDate(t *testing.T) {
	h, f, e := newTestHandler(t)
	f.svc.Create(context.Background(), f.appointment("10-03-2024"))

	req := httptest.NewRequest(http.MethodGet, "/?from_date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SearchAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}
