package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
)

const dateOnly = "2006-01-02"

// reportingHandler handles HTTP requests related to reconciliation reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	location         *time.Location
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, loc *time.Location) *reportingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &reportingHandler{reportingService: rs, location: loc}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, loc *time.Location) {
	h := newReportingHandler(reportingService, loc)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/reconciliation", h.getReconciliation)
	}
}

// parseBound reads an RFC3339 timestamp or a YYYY-MM-DD date in the shop timezone.
// A bare date used as an upper bound covers the whole day.
func parseBound(raw string, loc *time.Location, upper bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	day, err := time.ParseInLocation(dateOnly, raw, loc)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid date %q, use YYYY-MM-DD or RFC3339", raw))
	}
	if upper {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &day, nil
}

// getReconciliation godoc
// @Summary Cash reconciliation report
// @Description Aggregates non-voided movements in the window into sales, expenses, declared withdrawals, theoretical cash, net profit and cash discrepancy. Restricted roles get no totals and only the latest sales.
// @Tags reports
// @Produce json
// @Param from query string false "Start (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "End (RFC3339 or YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid window"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/reconciliation [get]
func (h *reportingHandler) getReconciliation(c *gin.Context) {
	var params dto.ReconciliationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err)
		return
	}

	var (
		window domain.Window
		err    error
	)
	if window.From, err = parseBound(params.From, h.location, false); err != nil {
		respondWithError(c, err, "Invalid report window")
		return
	}
	if window.To, err = parseBound(params.To, h.location, true); err != nil {
		respondWithError(c, err, "Invalid report window")
		return
	}

	view, err := h.reportingService.Reconciliation(c.Request.Context(), window, middleware.GetRoleFromContext(c))
	if err != nil {
		respondWithError(c, err, "Failed to generate reconciliation report")
		return
	}
	c.JSON(http.StatusOK, dto.ReconciliationResponse{OK: true, ReportView: *view})
}
