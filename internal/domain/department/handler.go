package department

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medrest/medrest/pkg/apperr"
)

// DoctorChecker reports whether any doctor is still assigned to a
// department. Implemented by the doctor service.
type DoctorChecker interface {
	AnyInDepartment(ctx context.Context, departmentID int64) (bool, error)
}

// LocationChecker verifies a location id before it is linked to a
// department. Implemented by the location service.
type LocationChecker interface {
	Exists(ctx context.Context, id int64) error
}

type Handler struct {
	svc       *Service
	doctors   DoctorChecker
	locations LocationChecker
}

func NewHandler(svc *Service, doctors DoctorChecker, locations LocationChecker) *Handler {
	return &Handler{svc: svc, doctors: doctors, locations: locations}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/departments")
	g.GET("", h.ListDepartments)
	g.GET("/infos", h.ListDepartments)
	g.GET("/names", h.ListDepartments)
	g.GET("/:id", h.GetDepartment)
	g.POST("", h.CreateDepartment)
	g.PUT("/:id", h.UpdateDepartment)
	g.PATCH("/:id", h.PatchDepartment)
	g.PATCH("/:depId/location/:locId", h.SetDepartmentLocation)
	g.DELETE("/:id", h.DeleteDepartment)
}

type departmentRequest struct {
	Name       string `json:"name"`
	LocationID *int64 `json:"locationId"`
}

func (r *departmentRequest) validate() error {
	var violations []string
	if strings.TrimSpace(r.Name) == "" {
		violations = append(violations, "name is required")
	}
	return apperr.NewValidation(violations)
}

func (h *Handler) ListDepartments(c echo.Context) error {
	deps, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deps)
}

func (h *Handler) GetDepartment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	dep, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dep)
}

func (h *Handler) CreateDepartment(c echo.Context) error {
	var req departmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	dep, err := h.svc.Create(c.Request().Context(), &Department{
		Name:       req.Name,
		LocationID: req.LocationID,
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/departments/%d", dep.ID))
	return c.JSON(http.StatusCreated, dep)
}

func (h *Handler) UpdateDepartment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req departmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	ok, err := h.svc.Update(c.Request().Context(), id, &Department{
		Name:       req.Name,
		LocationID: req.LocationID,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatchDepartment(c echo.Context) error {
	id, err := parseID(c, "id")
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

// SetDepartmentLocation points the department at an existing location. Both
// ids must resolve; each absence is its own 404.
func (h *Handler) SetDepartmentLocation(c echo.Context) error {
	depID, err := parseID(c, "depId")
	if err != nil {
		return err
	}
	locID, err := parseID(c, "locId")
	if err != nil {
		return err
	}
	if err := h.locations.Exists(c.Request().Context(), locID); err != nil {
		return err
	}
	ok, err := h.svc.Patch(c.Request().Context(), depID, &Patch{LocationID: &locID})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteDepartment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	referenced, err := h.doctors.AnyInDepartment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if referenced {
		return apperr.NewConflict("department can not be deleted")
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

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
