package api

import (
	"errors"
	"fmt"
	"net/http"

	"MacroGauge/internal/brief"
	"MacroGauge/internal/charts"
	"MacroGauge/internal/domain/models"
	"MacroGauge/internal/indicator"
	"MacroGauge/internal/loader"
	"MacroGauge/internal/timeseries"
	xhttp "MacroGauge/pkg/http"
	xlogger "MacroGauge/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the indicator API and the echarts dashboard.
type DashboardHandler struct {
	logger *xlogger.Logger
	svc    *brief.Service
	store  *loader.Store
}

func NewDashboardHandler(logger *xlogger.Logger, svc *brief.Service, store *loader.Store) *DashboardHandler {
	return &DashboardHandler{logger: logger, svc: svc, store: store}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/indicators", h.Indicators)
	g.GET("/indicators/:name", h.Indicator)
	g.GET("/snapshot", h.Snapshot)
	g.GET("/risk", h.Risk)
	g.GET("/brief", h.Brief)

	e.GET("/dashboard", h.Dashboard)
	e.GET("/healthz", h.Health)
}

func (h *DashboardHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	infos := h.svc.Indicators(req.Window)
	return xhttp.ListResponse(c, infos, int64(len(infos)))
}

func (h *DashboardHandler) Indicator(c echo.Context) error {
	req := &models.IndicatorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sum, err := h.svc.Indicator(req.Name, req.Window)
	if err != nil {
		return h.indicatorError(c, req.Name, err)
	}
	return xhttp.SuccessResponse(c, sum)
}

// indicatorError maps domain sentinels onto typed API errors.
func (h *DashboardHandler) indicatorError(c echo.Context, name string, err error) error {
	switch {
	case errors.Is(err, brief.ErrUnknownIndicator), errors.Is(err, loader.ErrUnknownDataset):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("indicator %q not found", name).WithError(err))
	case errors.Is(err, timeseries.ErrEmptySeries), errors.Is(err, indicator.ErrInsufficientData):
		appErr := xhttp.NewAppError(
			"ERR_INSUFFICIENT_DATA", "",
			fmt.Sprintf("indicator %q has too few observations", name),
			http.StatusUnprocessableEntity,
		).WithError(err)
		return xhttp.AppErrorResponse(c, appErr)
	default:
		h.logger.Error("indicator error", xlogger.String("indicator", name), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

func (h *DashboardHandler) Snapshot(c echo.Context) error {
	req := &models.SnapshotRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.svc.Snapshot(c.Request().Context(), req.Month)
	if err != nil {
		h.logger.Error("snapshot error", xlogger.Error(err))
		return h.monthError(c, req.Month, err)
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *DashboardHandler) Risk(c echo.Context) error {
	panel, err := h.svc.Risk(c.Request().Context())
	if err != nil {
		h.logger.Error("risk panel error", xlogger.Error(err))
		if errors.Is(err, timeseries.ErrEmptySeries) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no risk data loaded").WithError(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, panel)
}

func (h *DashboardHandler) Brief(c echo.Context) error {
	req := &models.BriefRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	b, err := h.svc.Brief(c.Request().Context(), req.Month, req.Format)
	if err != nil {
		h.logger.Error("brief error", xlogger.Error(err))
		return h.monthError(c, req.Month, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, b.Filename))
	return c.String(http.StatusOK, b.Text)
}

func (h *DashboardHandler) monthError(c echo.Context, month string, err error) error {
	if errors.Is(err, timeseries.ErrEmptySeries) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no data loaded").WithError(err))
	}
	if month != "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("cannot build snapshot for month %q", month).WithError(err))
	}
	return xhttp.AppErrorResponse(c, err)
}

// Dashboard renders the echarts HTML page.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	snap, err := h.svc.Snapshot(ctx, c.QueryParam("month"))
	if err != nil {
		h.logger.Error("dashboard snapshot error", xlogger.Error(err))
		return h.monthError(c, c.QueryParam("month"), err)
	}

	// charts cover the last five years
	cutoff := snap.AsOf.AddDate(-5, 0, 0)
	var series []*timeseries.Series
	for _, sel := range []struct{ dataset, column string }{
		{loader.DatasetForex, loader.ColUSDZMW},
		{loader.DatasetInflation, loader.ColInflationAnnual},
		{loader.DatasetCommodity, loader.ColCopper},
	} {
		if s, err := h.store.Series(sel.dataset, sel.column); err == nil {
			series = append(series, s.Since(cutoff))
		}
	}

	panel, err := h.svc.Risk(ctx)
	if err != nil {
		h.logger.Warn("dashboard risk panel unavailable", xlogger.Error(err))
		panel = &models.RiskPanel{}
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return charts.Dashboard(c.Response(), snap.Gauges, series, panel.FXStress, panel.FiscalStress, panel.YieldCurve)
}

func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Health())
}
