package doctor

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medrest/medrest/pkg/apperr"
)

// DepartmentChecker verifies a department id before it is assigned to a
// doctor. Implemented by the department service.
type DepartmentChecker interface {
	Exists(ctx context.Context, id int64) error
}

// SpecialisationChecker verifies a specialisation id before it is set on a
// doctor. Implemented by the specialisation service.
type SpecialisationChecker interface {
	Exists(ctx context.Context, id int64) error
}

type Handler struct {
	svc             *Service
	departments     DepartmentChecker
	specialisations SpecialisationChecker
}

func NewHandler(svc *Service, departments DepartmentChecker, specialisations SpecialisationChecker) *Handler {
	return &Handler{svc: svc, departments: departments, specialisations: specialisations}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/doctors")
	g.GET("", h.ListDoctors)
	g.GET("/infos", h.ListDoctors)
	g.GET("/:id", h.GetDoctor)
	g.POST("", h.CreateDoctor)
	g.PUT("/:id", h.UpdateDoctor)
	g.PATCH("/:id", h.PatchDoctor)
	g.PATCH("/:docId/department/:depId", h.AssignDoctorDepartment)
	g.PATCH("/:docId/specialisation/:specId", h.SetDoctorSpecialisation)
	g.DELETE("/:id", h.DeleteDoctor)
}

type doctorRequest struct {
	Name             string `json:"name"`
	Salary           *int   `json:"salary"`
	SpecialisationID *int64 `json:"specialisationId"`
	DepartmentID     *int64 `json:"departmentId"`
}

func (r *doctorRequest) validate() error {
	var violations []string
	if strings.TrimSpace(r.Name) == "" {
		violations = append(violations, "name is required")
	}
	return apperr.NewValidation(violations)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	docs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var req doctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	doc, err := h.svc.Create(c.Request().Context(), &Doctor{
		Name:             req.Name,
		Salary:           req.Salary,
		SpecialisationID: req.SpecialisationID,
		DepartmentID:     req.DepartmentID,
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/doctors/%d", doc.ID))
	return c.JSON(http.StatusCreated, doc)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req doctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	ok, err := h.svc.Update(c.Request().Context(), id, &Doctor{
		Name:             req.Name,
		Salary:           req.Salary,
		SpecialisationID: req.SpecialisationID,
		DepartmentID:     req.DepartmentID,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatchDoctor(c echo.Context) error {
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

// AssignDoctorDepartment points the doctor at an existing department. Both
// ids must resolve; each absence is its own 404.
func (h *Handler) AssignDoctorDepartment(c echo.Context) error {
	docID, err := parseID(c, "docId")
	if err != nil {
		return err
	}
	depID, err := parseID(c, "depId")
	if err != nil {
		return err
	}
	if err := h.departments.Exists(c.Request().Context(), depID); err != nil {
		return err
	}
	ok, err := h.svc.Patch(c.Request().Context(), docID, &Patch{DepartmentID: &depID})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetDoctorSpecialisation points the doctor at an existing specialisation.
func (h *Handler) SetDoctorSpecialisation(c echo.Context) error {
	docID, err := parseID(c, "docId")
	if err != nil {
		return err
	}
	specID, err := parseID(c, "specId")
	if err != nil {
		return err
	}
	if err := h.specialisations.Exists(c.Request().Context(), specID); err != nil {
		return err
	}
	ok, err := h.svc.Patch(c.Request().Context(), docID, &Patch{SpecialisationID: &specID})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := parseID(c, "id")
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

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
