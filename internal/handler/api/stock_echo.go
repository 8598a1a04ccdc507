package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	models "ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	"ChartPulse/internal/service/cache"
	"ChartPulse/internal/service/ratelimit"
	"ChartPulse/internal/usecase"
	xhttp "ChartPulse/pkg/http"
	xlogger "ChartPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig bounds per-client request rates on the analysis endpoints.
type RateLimitConfig struct {
	Capacity     float64
	RefillPerSec float64
}

// StockEchoHandler exposes the analysis, company-info, and symbol-search
// endpoints. Responses are cached as raw bytes keyed by the request shape.
type StockEchoHandler struct {
	logger   *xlogger.Logger
	reports  *usecase.ReportUseCase
	info     *usecase.InfoUseCase
	symbols  *usecase.SymbolsUseCase
	cache    cache.BytesCache
	cacheTTL time.Duration
	limiter  *ratelimit.Limiter
	limits   RateLimitConfig
	metrics  domrepo.Metrics
}

func NewStockEchoHandler(
	logger *xlogger.Logger,
	reports *usecase.ReportUseCase,
	info *usecase.InfoUseCase,
	symbols *usecase.SymbolsUseCase,
	bytesCache cache.BytesCache,
	cacheTTL time.Duration,
	limiter *ratelimit.Limiter,
	limits RateLimitConfig,
	metrics domrepo.Metrics,
) *StockEchoHandler {
	return &StockEchoHandler{
		logger:   logger,
		reports:  reports,
		info:     info,
		symbols:  symbols,
		cache:    bytesCache,
		cacheTTL: cacheTTL,
		limiter:  limiter,
		limits:   limits,
		metrics:  metrics,
	}
}

func (h *StockEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock", h.Stock)
	g.GET("/stock/info", h.Info)
	g.GET("/symbols", h.Symbols)
	e.GET("/healthz", h.Health)
}

func (h *StockEchoHandler) Stock(c echo.Context) error {
	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return h.tooManyRequests(c)
	}

	key := fmt.Sprintf("stock:%s:%s:%s:%s", req.Ticker, req.Range, req.Interval, req.Benchmark)
	if h.serveCached(c, "stock", key) {
		return nil
	}

	report, err := h.reports.GetReport(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("report usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.storeCached(key, report)
	return xhttp.SuccessResponse(c, report)
}

func (h *StockEchoHandler) Info(c echo.Context) error {
	req := &models.InfoRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return h.tooManyRequests(c)
	}

	key := "info:" + req.Ticker
	if h.serveCached(c, "info", key) {
		return nil
	}

	rep, err := h.info.GetInfo(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("info usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.storeCached(key, rep)
	return xhttp.SuccessResponse(c, rep)
}

func (h *StockEchoHandler) Symbols(c echo.Context) error {
	req := &models.SymbolsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.symbols.Search(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("symbols usecase error", xlogger.String("query", req.Q), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StockEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *StockEchoHandler) allow(c echo.Context) bool {
	if h.limiter == nil {
		return true
	}
	return h.limiter.Allow(c.RealIP(), h.limits.Capacity, h.limits.RefillPerSec)
}

func (h *StockEchoHandler) tooManyRequests(c echo.Context) error {
	return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
}

// serveCached writes a previously cached response body and reports whether it
// did. Cache failures fall through to a fresh computation.
func (h *StockEchoHandler) serveCached(c echo.Context, endpoint, key string) bool {
	if h.cache == nil {
		return false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("cache read error", xlogger.String("key", key), xlogger.Error(err))
		return false
	}
	if h.metrics != nil {
		h.metrics.RecordCacheHit(endpoint, ok)
	}
	if !ok {
		return false
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write(b); err != nil {
		h.logger.Warn("cache response write error", xlogger.Error(err))
	}
	return true
}

func (h *StockEchoHandler) storeCached(key string, data interface{}) {
	if h.cache == nil {
		return
	}
	body, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	})
	if err != nil {
		h.logger.Warn("cache marshal error", xlogger.String("key", key), xlogger.Error(err))
		return
	}
	if err := h.cache.SetBytes(key, body, h.cacheTTL); err != nil {
		h.logger.Warn("cache write error", xlogger.String("key", key), xlogger.Error(err))
	}
}
