package calcrun

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medcalc/medcalc/internal/calc"
	"github.com/medcalc/medcalc/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/calculators", h.ListCalculators)
	api.GET("/calculators/:id", h.GetCalculator)
	api.POST("/calculators/:id/run", h.RunCalculator)
	api.GET("/runs", h.ListRuns)
	api.GET("/runs/:id", h.GetRun)
}

func (h *Handler) ListCalculators(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total := h.svc.ListCalculators(pg.Limit, pg.Offset)
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetCalculator(c echo.Context) error {
	summary, err := h.svc.GetCalculator(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "calculator not found")
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) RunCalculator(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Inputs == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "inputs is required")
	}
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	verdict, err := h.svc.Run(c.Request().Context(), c.Param("id"), req.Inputs, requestID)
	if err != nil {
		if errors.Is(err, calc.ErrUnknownCalculator) {
			return echo.NewHTTPError(http.StatusNotFound, "calculator not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, verdict)
}

func (h *Handler) ListRuns(c echo.Context) error {
	if !h.svc.HasAudit() {
		return echo.NewHTTPError(http.StatusNotImplemented, "run history requires a database")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRuns(c.Request().Context(), c.QueryParam("calculator_id"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetRun(c echo.Context) error {
	if !h.svc.HasAudit() {
		return echo.NewHTTPError(http.StatusNotImplemented, "run history requires a database")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.GetRun(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	return c.JSON(http.StatusOK, rec)
}
