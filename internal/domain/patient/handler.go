package patient

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
	g := api.Group("/patients")
	g.GET("", h.ListPatients)
	g.GET("/infos", h.ListPatients)
	g.GET("/:id", h.GetPatient)
	g.POST("", h.CreatePatient)
	g.PUT("/:id", h.UpdatePatient)
	g.PATCH("/:id", h.PatchPatient)
	g.DELETE("/:id", h.DeletePatient)

	g.GET("/:id/appointments", h.GetPatientDoctors)
	g.POST("/:patientId/doctors/:doctorId", h.AppointDoctor)
	g.DELETE("/:patientId/doctors/:doctorId", h.RemoveAppointment)

	g.GET("/:id/prescriptions", h.GetPatientPrescriptions)
	g.POST("/:patientId/prescriptions/:prescriptionId", h.AddPrescription)
	g.DELETE("/:patientId/prescriptions/:prescriptionId", h.RemovePrescription)
}

type patientRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PhoneNumber  string `json:"phoneNumber"`
	EmailAddress string `json:"emailAddress"`
}

func (r *patientRequest) validate() error {
	var violations []string
	if strings.TrimSpace(r.FirstName) == "" {
		violations = append(violations, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		violations = append(violations, "lastName is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		violations = append(violations, "phoneNumber is required")
	}
	return apperr.NewValidation(violations)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pts, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pts)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	pt, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pt)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	pt, err := h.svc.Create(c.Request().Context(), &Patient{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		EmailAddress: req.EmailAddress,
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/patients/%d", pt.ID))
	return c.JSON(http.StatusCreated, pt)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}
	ok, err := h.svc.Update(c.Request().Context(), id, &Patient{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		EmailAddress: req.EmailAddress,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFound(kind)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatchPatient(c echo.Context) error {
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

func (h *Handler) DeletePatient(c echo.Context) error {
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

func (h *Handler) GetPatientDoctors(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	docs, err := h.svc.Doctors(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *Handler) AppointDoctor(c echo.Context) error {
	patientID, err := parseID(c, "patientId")
	if err != nil {
		return err
	}
	doctorID, err := parseID(c, "doctorId")
	if err != nil {
		return err
	}
	if err := h.svc.AddDoctor(c.Request().Context(), patientID, doctorID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RemoveAppointment(c echo.Context) error {
	patientID, err := parseID(c, "patientId")
	if err != nil {
		return err
	}
	doctorID, err := parseID(c, "doctorId")
	if err != nil {
		return err
	}
	if err := h.svc.RemoveDoctor(c.Request().Context(), patientID, doctorID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetPatientPrescriptions(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	prs, err := h.svc.Prescriptions(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prs)
}

func (h *Handler) AddPrescription(c echo.Context) error {
	patientID, err := parseID(c, "patientId")
	if err != nil {
		return err
	}
	prescriptionID, err := parseID(c, "prescriptionId")
	if err != nil {
		return err
	}
	if err := h.svc.AddPrescription(c.Request().Context(), patientID, prescriptionID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RemovePrescription(c echo.Context) error {
	patientID, err := parseID(c, "patientId")
	if err != nil {
		return err
	}
	prescriptionID, err := parseID(c, "prescriptionId")
	if err != nil {
		return err
	}
	if err := h.svc.RemovePrescription(c.Request().Context(), patientID, prescriptionID); err != nil {
		return err
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
