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

// bankingHandler handles HTTP requests for bank accounts, statement line
// import, and reconciliation.
type bankingHandler struct {
	bankingService        portssvc.BankingSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newBankingHandler creates a new bankingHandler.
func newBankingHandler(bs portssvc.BankingSvcFacade, rs portssvc.ReconciliationSvcFacade) *bankingHandler {
	return &bankingHandler{
		bankingService:        bs,
		reconciliationService: rs,
	}
}

// registerBankingRoutes registers routes related to banking and reconciliation.
func registerBankingRoutes(rg *gin.RouterGroup, bankingService portssvc.BankingSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newBankingHandler(bankingService, reconciliationService)

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.GET("/:bank_account_id", h.getBankAccount)
		bankAccounts.POST("/:bank_account_id/refresh-balance", h.refreshBalanceCache)
		bankAccounts.POST("/:bank_account_id/statement-lines", h.recordStatementLines)
		bankAccounts.GET("/:bank_account_id/match-proposals", h.proposeMatches)
	}

	rg.POST("/reconciliations", h.confirmReconciliation)
}

// createBankAccount godoc
// @Summary Create a bank account
// @Description Attaches bank metadata to an existing asset ledger account
// @Tags banking
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   bankAccount body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Linked account invalid or inactive"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 404 {object} map[string]string "Linked account not found"
// @Failure 409 {object} map[string]string "Ledger account already has a bank account"
// @Failure 500 {object} map[string]string "Failed to create bank account"
// @Security BearerAuth
// @Router /companies/{company_id}/bank-accounts [post]
func (h *bankingHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("actor_id", actorID))
	logger.Info("Received request to create bank account", slog.String("account_id", req.AccountID))

	bankAccount, err := h.bankingService.CreateBankAccount(c.Request.Context(), companyID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInactiveAccount) {
			logger.Warn("Bank account rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Linked account not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to create bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank account"})
		}
		return
	}

	logger.Info("Bank account created successfully", slog.String("bank_account_id", bankAccount.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(bankAccount))
}

// getBankAccount godoc
// @Summary Get a bank account
// @Description Retrieves a bank account within the company scope
// @Tags banking
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve bank account"
// @Security BearerAuth
// @Router /companies/{company_id}/bank-accounts/{bank_account_id} [get]
func (h *bankingHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	bankAccountID := c.Param("bank_account_id")

	bankAccount, err := h.bankingService.GetBankAccount(c.Request.Context(), companyID, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get bank account", slog.String("bank_account_id", bankAccountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(bankAccount))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Description Lists the company's bank accounts
// @Tags banking
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {array} dto.BankAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bank accounts"
// @Security BearerAuth
// @Router /companies/{company_id}/bank-accounts [get]
func (h *bankingHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	bankAccounts, err := h.bankingService.ListBankAccounts(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list bank accounts", slog.String("company_id", companyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank accounts"})
		return
	}

	responses := make([]dto.BankAccountResponse, len(bankAccounts))
	for i := range bankAccounts {
		responses[i] = dto.ToBankAccountResponse(&bankAccounts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// refreshBalanceCache godoc
// @Summary Refresh a bank account's cached balance
// @Description Recomputes the denormalized balance from the ledger
// @Tags banking
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to refresh balance"
// @Security BearerAuth
// @Router /companies/{company_id}/bank-accounts/{bank_account_id}/refresh-balance [post]
func (h *bankingHandler) refreshBalanceCache(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	bankAccountID := c.Param("bank_account_id")

	bankAccount, err := h.bankingService.RefreshBalanceCache(c.Request.Context(), companyID, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to refresh balance cache", slog.String("bank_account_id", bankAccountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(bankAccount))
}

// recordStatementLines godoc
// @Summary Import bank statement lines
// @Description Persists a batch of externally imported statement lines
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Param   lines body dto.RecordStatementLinesRequest true "Statement lines"
// @Success 201 {array} dto.StatementLineResponse
// @Failure 400 {object} map[string]string "Invalid input or zero amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to record statement lines"
// @Security BearerAuth
// @Router /companies/{company_id}/bank-accounts/{bank_account_id}/statement-lines [post]
func (h *bankingHandler) recordStatementLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	bankAccountID := c.Param("bank_account_id")

	var req dto.RecordStatementLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordStatementLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("bank_account_id", bankAccountID))
	logger.Info("Received request to record statement lines", slog.Int("line_count", len(req.Lines)))

	lines, err := h.reconciliationService.RecordStatementLines(c.Request.Context(), companyID, bankAccountID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAmount) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Statement lines rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to record statement lines", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record statement lines"})
		}
		return
	}

	responses := make([]dto.StatementLineResponse, len(lines))
	for i := range lines {
		responses[i] = dto.ToStatementLineResponse(&lines[i])
	}
	c.JSON(http.StatusCreated, responses)
}

// proposeMatches godoc
// @Summary Propose reconciliation matches
// @Description Generates ranked match candidates for unreconciled statement lines
// @Tags reconciliation
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   bank_account_id path string true "Bank account ID"
// @Param   since query string false "Only consider lines on or after this date (RFC3339)"
// @Success 200 {array} dto.MatchCandidateResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 500 {object} map[string]string "Failed to propose matches"
// @Security BearerAuth
// @Router /companies/{company_id}/bank-accounts/{bank_account_id}/match-proposals [get]
func (h *bankingHandler) proposeMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	bankAccountID := c.Param("bank_account_id")

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since date, expected RFC3339"})
			return
		}
		since = parsed
	}

	candidates, err := h.reconciliationService.ProposeMatches(c.Request.Context(), companyID, bankAccountID, since)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to propose matches", slog.String("bank_account_id", bankAccountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to propose matches"})
		}
		return
	}

	responses := make([]dto.MatchCandidateResponse, len(candidates))
	for i, candidate := range candidates {
		responses[i] = dto.ToMatchCandidateResponse(candidate)
	}
	c.JSON(http.StatusOK, responses)
}

// confirmReconciliation godoc
// @Summary Confirm a reconciliation
// @Description Durably records a 1:1 match between a statement line and a ledger entry
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   reconciliation body dto.ConfirmReconciliationRequest true "Match to confirm"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Amount mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Resource belongs to another company"
// @Failure 404 {object} map[string]string "Line or entry not found"
// @Failure 409 {object} map[string]string "Either side already reconciled"
// @Failure 500 {object} map[string]string "Failed to confirm reconciliation"
// @Security BearerAuth
// @Router /companies/{company_id}/reconciliations [post]
func (h *bankingHandler) confirmReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.ConfirmReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("actor_id", actorID))
	logger.Info("Received request to confirm reconciliation", slog.String("line_id", req.LineID), slog.String("entry_id", req.EntryID))

	rec, err := h.reconciliationService.ConfirmReconciliation(c.Request.Context(), companyID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyReconciled) {
			logger.Warn("Reconciliation conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrAmountMismatch) {
			logger.Warn("Reconciliation amount mismatch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Statement line or entry not found"})
		} else if errors.Is(err, apperrors.ErrCrossTenant) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to confirm reconciliation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm reconciliation"})
		}
		return
	}

	logger.Info("Reconciliation confirmed", slog.String("reconciliation_id", rec.ReconciliationID))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}
