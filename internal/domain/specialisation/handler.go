package specialisation

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medrest/medrest/pkg/apperr"
)

// DoctorChecker reports whether any doctor still carries a specialisation.
// Implemented by the doctor service.
type DoctorChecker interface {
	AnyWithSpecialisation(ctx context.Context, specialisationID int64) (bool, error)
}

type Handler struct {
	svc     *Service
	doctors DoctorChecker
}

func NewHandler(svc *Service, doctors DoctorChecker) *Handler {
	return &Handler{svc: svc, doctors: doctors}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/specialisations")
	g.GET("", h.ListSpecialisations)
	g.GET("/infos", h.ListSpecialisations)
	g.GET("/:id", h.GetSpecialisation)
	g.POST("", h.CreateSpecialisation)
	g.PUT("/:id", h.UpdateSpecialisation)
	g.PATCH("/:id", h.PatchSpecialisation)
	g.DELETE("/:id", h.DeleteSpecialisation)
}

type specialisationRequest struct {
	Name      string `json:"name"`
	MinSalary *int   `json:"minSalary"`
	MaxSalary *int   `json:"maxSalary"`
}

func (r *specialisationRequest) validate() error {
	var violations []string
	if strings.TrimSpace(r.Name) == "" {
		violations = append(violations, "name is required")
	}
	return apperr.NewValidation(violations)
}

func (h *Handler) ListSpecialisations(c echo.Context) error {
	specs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, specs)
}

func (h *Handler) GetSpecialisation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	spec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, spec)
}

func (h *Handler) CreateSpecialisation(c echo.Context) error {
	var req specialisationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	spec, err := h.svc.Create(c.Request().Context(), &Specialisation{
		Name:      req.Name,
		MinSalary: req.MinSalary,
		MaxSalary: req.MaxSalary,
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/specialisations/%d", spec.ID))
	return c.JSON(http.StatusCreated, spec)
}

func (h *Handler) UpdateSpecialisation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req specialisationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	ok, err := h.svc.Update(c.Request().Context(), id, &Specialisation{
		Name:      req.Name,
		MinSalary: req.MinSalary,
		MaxSalary: req.MaxSalary,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatchSpecialisation(c echo.Context) error {
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

func (h *Handler) DeleteSpecialisation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	referenced, err := h.doctors.AnyWithSpecialisation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if referenced {
		return apperr.NewConflict("specialisation can not be deleted")
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
