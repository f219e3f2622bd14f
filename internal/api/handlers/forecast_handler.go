package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/forecast-engine/internal/domain"
	"github.com/andresuchdata/forecast-engine/internal/forecast"
	"github.com/andresuchdata/forecast-engine/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetReport(c *gin.Context) {
	report, ok := h.buildReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ForecastHandler) GetStockForecasts(c *gin.Context) {
	h.section(c, func(report *domain.ForecastReport) interface{} { return report.StockForecasts })
}

func (h *ForecastHandler) GetReorderRecommendations(c *gin.Context) {
	h.section(c, func(report *domain.ForecastReport) interface{} { return report.ReorderRecommendations })
}

func (h *ForecastHandler) GetCashRunway(c *gin.Context) {
	h.section(c, func(report *domain.ForecastReport) interface{} { return report.CashRunway })
}

func (h *ForecastHandler) GetDemandForecasts(c *gin.Context) {
	h.section(c, func(report *domain.ForecastReport) interface{} { return report.DemandForecasts })
}

func (h *ForecastHandler) GetMarginTrend(c *gin.Context) {
	h.section(c, func(report *domain.ForecastReport) interface{} { return report.MarginTrend })
}

func (h *ForecastHandler) InvalidateCache(c *gin.Context) {
	tenantID := strings.TrimSpace(c.Param("tenant_id"))
	if tenantID == "" {
		errorResponse(c, http.StatusBadRequest, "tenant_id is required")
		return
	}

	if err := h.service.InvalidateTenant(c.Request.Context(), tenantID); err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to invalidate cache")
		return
	}

	c.Status(http.StatusNoContent)
}

// section runs the full report build and returns one slice of it. The engine
// is cheap relative to the queries and the cache absorbs repeat calls, so
// there is no per-section code path.
func (h *ForecastHandler) section(c *gin.Context, pick func(*domain.ForecastReport) interface{}) {
	report, ok := h.buildReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pick(report))
}

func (h *ForecastHandler) buildReport(c *gin.Context) (*domain.ForecastReport, bool) {
	tenantID, asOf, overrides, err := parseRequest(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	report, err := h.service.BuildReport(c.Request.Context(), tenantID, asOf, overrides)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidInput) {
			errorResponse(c, http.StatusBadRequest, err.Error())
		} else {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("failed to build forecast report")
			errorResponse(c, http.StatusInternalServerError, "failed to build forecast report")
		}
		return nil, false
	}

	return report, true
}

// parseRequest extracts the asOf timestamp and engine overrides from query
// parameters. Zero overrides fall back to the service defaults; asOf
// defaults to the current time since HTTP callers rarely replay history.
func parseRequest(c *gin.Context) (string, time.Time, forecast.Config, error) {
	tenantID := strings.TrimSpace(c.Param("tenant_id"))
	if tenantID == "" {
		return "", time.Time{}, forecast.Config{}, errors.New("tenant_id is required")
	}

	asOf := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return "", time.Time{}, forecast.Config{}, errors.New("as_of must be an RFC3339 timestamp")
		}
		asOf = parsed
	}

	var overrides forecast.Config
	intParam := func(name string, dst *int) error {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return errors.New(name + " must be an integer")
		}
		*dst = v
		return nil
	}
	if err := intParam("window_days", &overrides.AnalysisWindowDays); err != nil {
		return "", time.Time{}, forecast.Config{}, err
	}
	if err := intParam("lead_time_days", &overrides.LeadTimeDays); err != nil {
		return "", time.Time{}, forecast.Config{}, err
	}
	if err := intParam("safety_days", &overrides.SafetyDays); err != nil {
		return "", time.Time{}, forecast.Config{}, err
	}
	if raw := strings.TrimSpace(c.Query("stress_factor")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", time.Time{}, forecast.Config{}, errors.New("stress_factor must be a number")
		}
		overrides.StressFactor = v
	}
	if raw := strings.TrimSpace(c.Query("ci_width")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", time.Time{}, forecast.Config{}, errors.New("ci_width must be a number")
		}
		overrides.CIWidth = v
	}
	if raw := strings.TrimSpace(c.Query("horizons")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			days, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return "", time.Time{}, forecast.Config{}, errors.New("horizons must be a comma-separated list of days")
			}
			overrides.Horizons = append(overrides.Horizons, days)
		}
	}

	return tenantID, asOf, overrides, nil
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
