package scheduling

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
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/search", h.SearchAppointments)
	api.GET("/appointments/:id", h.GetAppointment)
	api.POST("/appointments", h.CreateAppointment)
	api.PUT("/appointments/:id", h.ReplaceAppointment)
	api.PATCH("/appointments/:id", h.PatchAppointment)
	api.DELETE("/appointments/:id", h.DeleteAppointment)

	api.GET("/patients/:id/appointments", h.PatientAppointments)
	api.GET("/doctors/:id/appointments", h.DoctorAppointments)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := rest.Bind(c, &a); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), a)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context()))
}

func (h *Handler) ReplaceAppointment(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	var a Appointment
	if err := rest.Bind(c, &a); err != nil {
		return err
	}
	updated, err := h.svc.Replace(c.Request().Context(), id, a)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchAppointment(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	ap, err := rest.BindPatch[AppointmentPatch](c)
	if err != nil {
		return err
	}
	updated, err := h.svc.Patch(c.Request().Context(), id, ap)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return rest.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchAppointments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Search(c.Request().Context(), AppointmentCriteria{
		PatientFirstName: rest.OptString(c, "patient_first_name"),
		PatientLastName:  rest.OptString(c, "patient_last_name"),
		DoctorFirstName:  rest.OptString(c, "doctor_first_name"),
		DoctorLastName:   rest.OptString(c, "doctor_last_name"),
		Specialization:   rest.OptString(c, "specialization"),
		FromDate:         rest.OptString(c, "from_date"),
		ToDate:           rest.OptString(c, "to_date"),
	}))
}

func (h *Handler) PatientAppointments(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ForPatient(c.Request().Context(), id))
}

func (h *Handler) DoctorAppointments(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ForDoctor(c.Request().Context(), id))
}
