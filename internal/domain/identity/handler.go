package identity

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
	api.GET("/persons", h.ListPersons)
	api.GET("/persons/search", h.SearchPersons)
	api.GET("/persons/:id", h.GetPerson)
	api.POST("/persons", h.CreatePerson)
	api.PUT("/persons/:id", h.ReplacePerson)
	api.PATCH("/persons/:id", h.PatchPerson)
	api.DELETE("/persons/:id", h.DeletePerson)

	api.GET("/patients", h.ListPatients)
	api.GET("/patients/search", h.SearchPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.CreatePatient)
	api.PUT("/patients/:id", h.ReplacePatient)
	api.PATCH("/patients/:id", h.PatchPatient)
	api.DELETE("/patients/:id", h.DeletePatient)

	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/search", h.SearchDoctors)
	api.GET("/doctors/:id", h.GetDoctor)
	api.POST("/doctors", h.CreateDoctor)
	api.PUT("/doctors/:id", h.ReplaceDoctor)
	api.PATCH("/doctors/:id", h.PatchDoctor)
	api.DELETE("/doctors/:id", h.DeleteDoctor)
}

// -- Person --

func (h *Handler) CreatePerson(c echo.Context) error {
	var p Person
	if err := rest.Bind(c, &p); err != nil {
		return err
	}
	created, err := h.svc.CreatePerson(c.Request().Context(), p)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPerson(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPerson(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPersons(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListPersons(c.Request().Context()))
}

func (h *Handler) ReplacePerson(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	var p Person
	if err := rest.Bind(c, &p); err != nil {
		return err
	}
	updated, err := h.svc.ReplacePerson(c.Request().Context(), id, p)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchPerson(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	pp, err := rest.BindPatch[PersonPatch](c)
	if err != nil {
		return err
	}
	updated, err := h.svc.PatchPerson(c.Request().Context(), id, pp)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePerson(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePerson(c.Request().Context(), id); err != nil {
		return rest.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchPersons(c echo.Context) error {
	crit, err := personCriteria(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.SearchPersons(c.Request().Context(), crit))
}

// -- Patient --

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := rest.Bind(c, &p); err != nil {
		return err
	}
	created, err := h.svc.CreatePatient(c.Request().Context(), p)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListPatients(c.Request().Context()))
}

func (h *Handler) ReplacePatient(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	var p Patient
	if err := rest.Bind(c, &p); err != nil {
		return err
	}
	updated, err := h.svc.ReplacePatient(c.Request().Context(), id, p)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchPatient(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	pp, err := rest.BindPatch[PatientPatch](c)
	if err != nil {
		return err
	}
	updated, err := h.svc.PatchPatient(c.Request().Context(), id, pp)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return rest.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchPatients(c echo.Context) error {
	crit, err := personCriteria(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.SearchPatients(c.Request().Context(), PatientCriteria{
		PersonCriteria: crit,
		HealthStatus:   rest.OptString(c, "health_status"),
	}))
}

// -- Doctor --

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d Doctor
	if err := rest.Bind(c, &d); err != nil {
		return err
	}
	created, err := h.svc.CreateDoctor(c.Request().Context(), d)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListDoctors(c.Request().Context()))
}

func (h *Handler) ReplaceDoctor(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	var d Doctor
	if err := rest.Bind(c, &d); err != nil {
		return err
	}
	updated, err := h.svc.ReplaceDoctor(c.Request().Context(), id, d)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchDoctor(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	dp, err := rest.BindPatch[DoctorPatch](c)
	if err != nil {
		return err
	}
	updated, err := h.svc.PatchDoctor(c.Request().Context(), id, dp)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return rest.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchDoctors(c echo.Context) error {
	crit, err := personCriteria(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.SearchDoctors(c.Request().Context(), DoctorCriteria{
		PersonCriteria: crit,
		Specialization: rest.OptString(c, "specialization"),
	}))
}

func personCriteria(c echo.Context) (PersonCriteria, error) {
	minAge, err := rest.OptInt(c, "min_age")
	if err != nil {
		return PersonCriteria{}, err
	}
	maxAge, err := rest.OptInt(c, "max_age")
	if err != nil {
		return PersonCriteria{}, err
	}
	return PersonCriteria{
		FirstName: rest.OptString(c, "first_name"),
		LastName:  rest.OptString(c, "last_name"),
		Gender:    rest.OptString(c, "gender"),
		Address:   rest.OptString(c, "address"),
		MinAge:    minAge,
		MaxAge:    maxAge,
	}, nil
}
