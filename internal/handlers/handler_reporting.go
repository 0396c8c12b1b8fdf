package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/dto"
	"github.com/lifeline-hq/ledger/internal/middleware"
)

// reportingHandler handles HTTP requests for the trial balance and the three
// financial statements.
type reportingHandler struct {
	balanceService   portssvc.BalanceSvcFacade
	statementService portssvc.StatementSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(bs portssvc.BalanceSvcFacade, ss portssvc.StatementSvcFacade) *reportingHandler {
	return &reportingHandler{
		balanceService:   bs,
		statementService: ss,
	}
}

// registerReportingRoutes registers routes related to financial reporting.
func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, statementService portssvc.StatementSvcFacade) {
	h := newReportingHandler(balanceService, statementService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Returns per-account debit/credit totals through asOf
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Report date (RFC3339), defaults to now"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected RFC3339"})
			return
		}
		asOf = parsed
	}

	rows, err := h.balanceService.TrialBalance(c.Request.Context(), companyID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to generate trial balance", slog.String("company_id", companyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TrialBalanceResponse{Rows: rows})
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description Partitions Asset/Liability/Equity balances at a point in time
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Report date (RFC3339), defaults to now"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected RFC3339"})
			return
		}
		asOf = parsed
	}

	report, err := h.statementService.BalanceSheet(c.Request.Context(), companyID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to generate balance sheet", slog.String("company_id", companyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BalanceSheetResponse{Report: report})
}

// getIncomeStatement godoc
// @Summary Get the income statement
// @Description Computes Revenue/Expense period activity and net income over [from, to]
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   from query string true "Period start (RFC3339)"
// @Param   to query string true "Period end (RFC3339)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid or inverted date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 500 {object} map[string]string "Failed to generate income statement"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.statementService.IncomeStatement(c.Request.Context(), companyID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to generate income statement", slog.String("company_id", companyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate income statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.IncomeStatementResponse{Report: report})
}

// getCashFlow godoc
// @Summary Get the cash flow report
// @Description Reports net change of cash-like accounts over [from, to]
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   from query string true "Period start (RFC3339)"
// @Param   to query string true "Period end (RFC3339)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid range or no cash-like accounts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 500 {object} map[string]string "Failed to generate cash flow report"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.statementService.CashFlow(c.Request.Context(), companyID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) || errors.Is(err, apperrors.ErrNoCashAccounts) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to generate cash flow report", slog.String("company_id", companyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate cash flow report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CashFlowResponse{Report: report})
}
