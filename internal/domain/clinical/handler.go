package clinical

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthcare/healthcare/internal/platform/rest"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medical-records", h.ListMedicalRecords)
	api.GET("/medical-records/search", h.SearchMedicalRecords)
	api.GET("/medical-records/:id", h.GetMedicalRecord)
	api.POST("/medical-records", h.CreateMedicalRecord)
	api.PUT("/medical-records/:id", h.ReplaceMedicalRecord)
	api.PATCH("/medical-records/:id", h.PatchMedicalRecord)
	api.DELETE("/medical-records/:id", h.DeleteMedicalRecord)

	api.GET("/patients/:id/medical-record", h.PatientMedicalRecord)
}

// respond writes the record, or a message when the patient already had one.
func respond(c echo.Context, status int, r MedicalRecord, outcome Outcome) error {
	if outcome == OutcomeAlreadyExists {
		return c.JSON(http.StatusOK, rest.Message{
			Message: fmt.Sprintf("patient %d already has a medical record (id %d)", r.Patient.ID, r.ID),
		})
	}
	return c.JSON(status, r)
}

func (h *Handler) CreateMedicalRecord(c echo.Context) error {
	var r MedicalRecord
	if err := rest.Bind(c, &r); err != nil {
		return err
	}
	created, outcome, err := h.svc.Create(c.Request().Context(), r)
	if err != nil {
		return rest.Error(err)
	}
	return respond(c, http.StatusCreated, created, outcome)
}

func (h *Handler) GetMedicalRecord(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListMedicalRecords(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context()))
}

func (h *Handler) ReplaceMedicalRecord(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	var r MedicalRecord
	if err := rest.Bind(c, &r); err != nil {
		return err
	}
	updated, outcome, err := h.svc.Replace(c.Request().Context(), id, r)
	if err != nil {
		return rest.Error(err)
	}
	return respond(c, http.StatusOK, updated, outcome)
}

func (h *Handler) PatchMedicalRecord(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	rp, err := rest.BindPatch[MedicalRecordPatch](c)
	if err != nil {
		return err
	}
	updated, outcome, err := h.svc.Patch(c.Request().Context(), id, rp)
	if err != nil {
		return rest.Error(err)
	}
	return respond(c, http.StatusOK, updated, outcome)
}

func (h *Handler) DeleteMedicalRecord(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return rest.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchMedicalRecords(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Search(c.Request().Context(), MedicalRecordCriteria{
		PatientFirstName: rest.OptString(c, "patient_first_name"),
		PatientLastName:  rest.OptString(c, "patient_last_name"),
		Diagnosis:        rest.OptString(c, "diagnosis"),
		BloodGroup:       rest.OptString(c, "blood_group"),
	}))
}

func (h *Handler) PatientMedicalRecord(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	r, err := h.svc.ForPatient(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, r)
}
