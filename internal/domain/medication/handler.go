package medication

import (
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
	api.GET("/prescriptions", h.ListPrescriptions)
	api.GET("/prescriptions/search", h.SearchPrescriptions)
	api.GET("/prescriptions/:id", h.GetPrescription)
	api.POST("/prescriptions", h.CreatePrescription)
	api.PUT("/prescriptions/:id", h.ReplacePrescription)
	api.PATCH("/prescriptions/:id", h.PatchPrescription)
	api.DELETE("/prescriptions/:id", h.DeletePrescription)

	api.GET("/patients/:id/prescriptions", h.PatientPrescriptions)
	api.GET("/doctors/:id/prescriptions", h.DoctorPrescriptions)
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	var p Prescription
	if err := rest.Bind(c, &p); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), p)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context()))
}

func (h *Handler) ReplacePrescription(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	var p Prescription
	if err := rest.Bind(c, &p); err != nil {
		return err
	}
	updated, err := h.svc.Replace(c.Request().Context(), id, p)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchPrescription(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	pp, err := rest.BindPatch[PrescriptionPatch](c)
	if err != nil {
		return err
	}
	updated, err := h.svc.Patch(c.Request().Context(), id, pp)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePrescription(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return rest.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchPrescriptions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Search(c.Request().Context(), PrescriptionCriteria{
		PatientFirstName: rest.OptString(c, "patient_first_name"),
		PatientLastName:  rest.OptString(c, "patient_last_name"),
		DoctorFirstName:  rest.OptString(c, "doctor_first_name"),
		DoctorLastName:   rest.OptString(c, "doctor_last_name"),
		Medication:       rest.OptString(c, "medication"),
		FromDate:         rest.OptString(c, "from_date"),
		ToDate:           rest.OptString(c, "to_date"),
	}))
}

func (h *Handler) PatientPrescriptions(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ForPatient(c.Request().Context(), id))
}

func (h *Handler) DoctorPrescriptions(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ForDoctor(c.Request().Context(), id))
}
