package prescription

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medrest/medrest/pkg/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/prescriptions")
	g.GET("", h.ListPrescriptions)
	g.GET("/infos", h.ListPrescriptions)
	g.GET("/:id", h.GetPrescription)
	g.POST("", h.CreatePrescription)
	g.PUT("/:id", h.UpdatePrescription)
	g.PATCH("/:id", h.PatchPrescription)
	g.DELETE("/:id", h.DeletePrescription)
}

type prescriptionRequest struct {
	MedicamentName string `json:"medicamentName"`
	Price          *int   `json:"price"`
	AmountToTake   *int   `json:"amountToTake"`
}

func (r *prescriptionRequest) validate() error {
	var violations []string
	if strings.TrimSpace(r.MedicamentName) == "" {
		violations = append(violations, "medicamentName is required")
	}
	if r.AmountToTake == nil {
		violations = append(violations, "amountToTake is required")
	}
	return apperr.NewValidation(violations)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	prs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prs)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	pr, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pr)
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	pr, err := h.svc.Create(c.Request().Context(), &Prescription{
		MedicamentName: req.MedicamentName,
		Price:          req.Price,
		AmountToTake:   *req.AmountToTake,
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/prescriptions/%d", pr.ID))
	return c.JSON(http.StatusCreated, pr)
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	ok, err := h.svc.Update(c.Request().Context(), id, &Prescription{
		MedicamentName: req.MedicamentName,
		Price:          req.Price,
		AmountToTake:   *req.AmountToTake,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatchPrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var p Patch
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ok, err := h.svc.Patch(c.Request().Context(), id, &p)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeletePrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ok, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
