package billing

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
	api.GET("/bills", h.ListBills)
	api.GET("/bills/search", h.SearchBills)
	api.GET("/bills/:id", h.GetBill)
	api.POST("/bills", h.CreateBill)
	api.PUT("/bills/:id", h.ReplaceBill)
	api.PATCH("/bills/:id", h.PatchBill)
	api.DELETE("/bills/:id", h.DeleteBill)

	api.GET("/patients/:id/bills", h.PatientBills)
}

func (h *Handler) CreateBill(c echo.Context) error {
	var b Billing
	if err := rest.Bind(c, &b); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), b)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBills(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context()))
}

func (h *Handler) ReplaceBill(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	var b Billing
	if err := rest.Bind(c, &b); err != nil {
		return err
	}
	updated, err := h.svc.Replace(c.Request().Context(), id, b)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchBill(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	bp, err := rest.BindPatch[BillingPatch](c)
	if err != nil {
		return err
	}
	updated, err := h.svc.Patch(c.Request().Context(), id, bp)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteBill(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return rest.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchBills(c echo.Context) error {
	minAmount, err := rest.OptFloat(c, "min_amount")
	if err != nil {
		return err
	}
	maxAmount, err := rest.OptFloat(c, "max_amount")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Search(c.Request().Context(), BillingCriteria{
		PatientFirstName: rest.OptString(c, "patient_first_name"),
		PatientLastName:  rest.OptString(c, "patient_last_name"),
		FromDate:         rest.OptString(c, "from_date"),
		ToDate:           rest.OptString(c, "to_date"),
		MinAmount:        minAmount,
		MaxAmount:        maxAmount,
	}))
}

func (h *Handler) PatientBills(c echo.Context) error {
	id, err := rest.ID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ForPatient(c.Request().Context(), id))
}
