package handlers

import (
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// getBalanceSheet handles GET /reports/balance-sheet?asOfDate=YYYY-MM-DD
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	asOf, err := parseAsOfDate(c.Query("asOfDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// exportBalanceSheet handles GET /reports/balance-sheet/export
func (h *reportingHandler) exportBalanceSheet(c *gin.Context) {
	asOf, err := parseAsOfDate(c.Query("asOfDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	csvBytes, err := h.reportingService.BalanceSheetCSV(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err, "Failed to export balance sheet")
		return
	}

	filename := fmt.Sprintf("balance-sheet-%s.csv", asOf.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", csvBytes)
}

// getTrialBalance handles GET /reports/trial-balance?asOfDate=YYYY-MM-DD
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	asOf, err := parseAsOfDate(c.Query("asOfDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(asOf.Format("2006-01-02"), rows))
}

// getProfitAndLoss handles GET /reports/profit-and-loss?fromDate=...&toDate=...
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	from, err := parsePeriodDate(c.Query("fromDate"), false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fromDate, expected YYYY-MM-DD"})
		return
	}
	to, err := parsePeriodDate(c.Query("toDate"), true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid toDate, expected YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate precedes fromDate"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err, "Failed to generate profit and loss report")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// parsePeriodDate parses a required YYYY-MM-DD query value. End-of-period
// dates extend to the last second of the day.
func parsePeriodDate(raw string, endOfDay bool) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC), nil
	}
	return d, nil
}

// registerReportingRoutes registers report specific routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingSvc)

	reports := group.Group("/reports")
	{
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/balance-sheet/export", h.exportBalanceSheet)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
	}
}
