package api

import (
	"fmt"
	"time"

	models "StarChart/internal/domain/models"
	"StarChart/internal/service/stream"
	"StarChart/internal/usecase"
	xhttp "StarChart/pkg/http"
	xlogger "StarChart/pkg/logger"
	"StarChart/pkg/util"

	"github.com/labstack/echo/v4"
)

// ChartEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type ChartEchoHandler struct {
	logger  *xlogger.Logger
	charts  *usecase.ChartService
	archive *usecase.ArchiveService
	transit *stream.TransitStream
}

func NewChartEchoHandler(logger *xlogger.Logger, charts *usecase.ChartService, archive *usecase.ArchiveService, transit *stream.TransitStream) *ChartEchoHandler {
	return &ChartEchoHandler{logger: logger, charts: charts, archive: archive, transit: transit}
}

func (h *ChartEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/chart", h.Chart)
	g.GET("/moon", h.Moon)
	g.GET("/aspects", h.Aspects)
	if h.archive != nil {
		g.GET("/archive", h.Archive)
	}
	if h.transit != nil {
		g.GET("/transits", h.transit.Serve)
	}
}

// requestDay resolves an optional date string to a chart day, defaulting to
// the current UTC day.
func requestDay(date string) time.Time {
	return util.ParseDateDefault(date, time.Now().UTC())
}

func (h *ChartEchoHandler) cacheControl() string {
	return fmt.Sprintf("private, max-age=%d", int(h.charts.TTL().Seconds()))
}

func (h *ChartEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	chart, err := h.charts.GetChart(c.Request().Context(), requestDay(req.Date), req.Sidereal, req.Interpret)
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, h.cacheControl())
	return xhttp.SuccessResponse(c, chart)
}

func (h *ChartEchoHandler) Moon(c echo.Context) error {
	req := &models.MoonRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	phase, err := h.charts.GetMoonPhase(c.Request().Context(), requestDay(req.Date))
	if err != nil {
		h.logger.Error("moon usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, h.cacheControl())
	return xhttp.SuccessResponse(c, phase)
}

func (h *ChartEchoHandler) Aspects(c echo.Context) error {
	req := &models.AspectsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	aspects, err := h.charts.GetAspects(c.Request().Context(), requestDay(req.Date), req.Sidereal, false)
	if err != nil {
		h.logger.Error("aspects usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, aspects, int64(len(aspects)))
}

func (h *ChartEchoHandler) Archive(c echo.Context) error {
	req := &models.ArchiveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, err := util.ParseDate(req.From)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	to, err := util.ParseDate(req.To)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	snapshots, err := h.archive.Range(c.Request().Context(), from, to)
	if err != nil {
		h.logger.Error("archive usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, snapshots, int64(len(snapshots)))
}
