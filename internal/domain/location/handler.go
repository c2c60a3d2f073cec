package location

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medrest/medrest/pkg/apperr"
)

// DepartmentChecker reports whether any department still references a
// location. Implemented by the department service; defined here so the two
// packages stay decoupled.
type DepartmentChecker interface {
	AnyAtLocation(ctx context.Context, locationID int64) (bool, error)
}

type Handler struct {
	svc         *Service
	departments DepartmentChecker
}

func NewHandler(svc *Service, departments DepartmentChecker) *Handler {
	return &Handler{svc: svc, departments: departments}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/locations")
	g.GET("", h.ListLocations)
	g.GET("/infos", h.ListLocations)
	g.GET("/:id", h.GetLocation)
	g.POST("", h.CreateLocation)
	g.PUT("/:id", h.UpdateLocation)
	g.PATCH("/:id", h.PatchLocation)
	g.DELETE("/:id", h.DeleteLocation)
}

type locationRequest struct {
	City   string `json:"city"`
	Street string `json:"street"`
	Number *int   `json:"number"`
}

func (r *locationRequest) validate() error {
	var violations []string
	if strings.TrimSpace(r.City) == "" {
		violations = append(violations, "city is required")
	}
	if strings.TrimSpace(r.Street) == "" {
		violations = append(violations, "street is required")
	}
	if r.Number != nil && (*r.Number < 1 || *r.Number > 10000) {
		violations = append(violations, "number must be between 1 and 10000")
	}
	return apperr.NewValidation(violations)
}

func (h *Handler) ListLocations(c echo.Context) error {
	locs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locs)
}

func (h *Handler) GetLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	loc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loc)
}

func (h *Handler) CreateLocation(c echo.Context) error {
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	loc, err := h.svc.Create(c.Request().Context(), &Location{
		City:   req.City,
		Street: req.Street,
		Number: req.Number,
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/locations/%d", loc.ID))
	return c.JSON(http.StatusCreated, loc)
}

func (h *Handler) UpdateLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	ok, err := h.svc.Update(c.Request().Context(), id, &Location{
		City:   req.City,
		Street: req.Street,
		Number: req.Number,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatchLocation(c echo.Context) error {
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

func (h *Handler) DeleteLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	referenced, err := h.departments.AnyAtLocation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if referenced {
		return apperr.NewConflict("location can not be deleted")
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
