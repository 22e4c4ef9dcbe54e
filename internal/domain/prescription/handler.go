package prescription

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/receita/receita/internal/domain/patient"
	"github.com/receita/receita/internal/platform/auth"
	"github.com/receita/receita/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/prescriptions", h.Create)
	api.GET("/prescriptions", h.List)
	api.GET("/prescriptions/:id", h.Get)
	api.PUT("/prescriptions/:id", h.Update)
	api.GET("/prescriptions/:id/pdf", h.PDF)
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	doctorID := auth.UserIDFromContext(c.Request().Context())
	resp, err := h.svc.Create(c.Request().Context(), doctorID, req)
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, patient.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, patient.ErrDuplicateCPF):
		return echo.NewHTTPError(http.StatusConflict, "a patient with this CPF already exists")
	case errors.Is(err, ErrRenderFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, "could not generate the prescription document")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) List(c echo.Context) error {
	doctorID := auth.UserIDFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), doctorID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	doctorID := auth.UserIDFromContext(c.Request().Context())
	p, err := h.svc.Get(c.Request().Context(), doctorID, id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	doctorID := auth.UserIDFromContext(c.Request().Context())
	p, err := h.svc.Update(c.Request().Context(), doctorID, id, req)
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) PDF(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	doctorID := auth.UserIDFromContext(c.Request().Context())
	resp, err := h.svc.RenderPDF(c.Request().Context(), doctorID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	case errors.Is(err, ErrRenderFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, "could not generate the prescription document")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
