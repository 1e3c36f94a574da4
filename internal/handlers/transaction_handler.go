package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
	"khata/internal/export"
	"khata/internal/ledger"
	"khata/internal/models"
	"khata/internal/services"
	"khata/internal/validator"
)

// TransactionHandler handles ledger requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	settingsService    services.SettingsServicer
	participants       []string
	now                func() time.Time
}

// NewTransactionHandler creates a new TransactionHandler. participants are
// the names per-participant totals are computed for.
func NewTransactionHandler(transactionService services.TransactionServicer, settingsService services.SettingsServicer, participants []string) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		settingsService:    settingsService,
		participants:       participants,
		now:                time.Now,
	}
}

// TransactionRequest represents the payload for creating or replacing a transaction
type TransactionRequest struct {
	From     string          `json:"from" binding:"required,notblank,max=100"`
	To       string          `json:"to" binding:"required,notblank,max=100"`
	Purpose  string          `json:"purpose" binding:"max=500"`
	Amount   decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"string"`
	Currency string          `json:"currency" binding:"required,ledger_currency"`
	Date     string          `json:"date" binding:"required,ledger_date"`
}

func (r TransactionRequest) input() services.TransactionInput {
	currency, _ := models.ParseCurrency(r.Currency)
	date, _ := validator.ParseDate(r.Date)
	return services.TransactionInput{
		From:     r.From,
		To:       r.To,
		Purpose:  r.Purpose,
		Amount:   r.Amount,
		Currency: currency,
		Date:     date,
	}
}

func (r TransactionRequest) update() services.TransactionUpdate {
	in := r.input()
	return services.TransactionUpdate{
		From:     &in.From,
		To:       &in.To,
		Purpose:  &in.Purpose,
		Amount:   &in.Amount,
		Currency: &in.Currency,
		Date:     &in.Date,
	}
}

// view loads the snapshot and current rate and narrows it by f.
func (h *TransactionHandler) view(ctx context.Context, snapshot []models.Transaction, f ledger.Filter) (*ledger.View, error) {
	settings, err := h.settingsService.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	v := ledger.NewView(snapshot, f, settings.KWDToPKRRate, h.participants)
	return &v, nil
}

// ListTransactions returns the filtered ledger
// @Summary     List transactions
// @Description Get the visible transactions with totals and filter options. Deleted rows are never returned.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       search    query string false "Case-insensitive match on from, to or purpose"
// @Param       date_from query string false "Earliest date (YYYY-MM-DD), inclusive"
// @Param       date_to   query string false "Latest date (YYYY-MM-DD), inclusive"
// @Param       sender    query string false "Exact sender"
// @Param       receiver  query string false "Exact receiver"
// @Param       currency  query string false "PKR or KWD"
// @Success     200 {object} ledger.View "Ledger view"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	list, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	v, err := h.view(c.Request.Context(), list, f)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// StreamTransactions pushes the filtered ledger on every change
// @Summary     Stream transactions
// @Description Server-sent events carrying the same payload as GET /transactions, sent now and after every change
// @Tags        transactions
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {object} ledger.View "snapshot events"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/stream [get]
func (h *TransactionHandler) StreamTransactions(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	streamSnapshots(c, "transactions", h.subscribeLedger, func(state ledgerState) (any, error) {
		v := ledger.NewView(state.transactions, f, state.settings.KWDToPKRRate, h.participants)
		return &v, nil
	})
}

// ledgerState is the latest transaction list paired with the latest settings.
type ledgerState struct {
	transactions []models.Transaction
	settings     models.Settings
}

// subscribeLedger follows both the transaction and the settings feed, so
// totals are re-rendered when either the rows or the rate change.
func (h *TransactionHandler) subscribeLedger(ctx context.Context, fn func(ledgerState)) (func(), error) {
	var mu sync.Mutex
	var state ledgerState
	var haveRows, haveSettings bool
	emit := func() {
		if haveRows && haveSettings {
			fn(state)
		}
	}

	unsubscribeSettings, err := h.settingsService.Subscribe(ctx, func(s models.Settings) {
		mu.Lock()
		defer mu.Unlock()
		state.settings = s
		haveSettings = true
		emit()
	})
	if err != nil {
		return nil, err
	}

	unsubscribeRows, err := h.transactionService.Subscribe(ctx, func(list []models.Transaction) {
		mu.Lock()
		defer mu.Unlock()
		state.transactions = list
		haveRows = true
		emit()
	})
	if err != nil {
		unsubscribeSettings()
		return nil, err
	}

	return func() {
		unsubscribeRows()
		unsubscribeSettings()
	}, nil
}

// ExportTransactions renders the filtered ledger as a document
// @Summary     Export transactions
// @Description Download the filtered ledger as PDF or XLSX. The period line appears only when both dates are given.
// @Tags        transactions
// @Produce     application/pdf
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       format query string true "pdf or xlsx"
// @Success     200 {file} file "Report"
// @Failure     400 {object} ErrorResponse "Invalid format or filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	format, ok := export.ParseFormat(c.DefaultQuery("format", string(export.FormatPDF)))
	if !ok {
		respondWithError(c, apperrors.ErrUnsupportedFormat)
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	list, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	visible := ledger.Apply(list, f)

	var dateRange *export.DateRange
	if f.HasDateRange() {
		dateRange = &export.DateRange{Start: f.DateFrom, End: f.DateTo}
	}

	var buf bytes.Buffer
	switch format {
	case export.FormatPDF:
		err = export.PDF(&buf, visible, dateRange)
	case export.FormatXLSX:
		err = export.XLSX(&buf, visible, dateRange)
	}
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(format, h.now())))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// GetTransactionByID returns a single transaction
// @Summary     Get a transaction
// @Description Get a transaction by ID. Deleted transactions are not found.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a transfer between two people. Admin only.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     503 {object} ErrorResponse "Profile pending"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	editor, err := getEditor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), req.input(), editor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// UpdateTransaction replaces the editable fields of a transaction
// @Summary     Update a transaction
// @Description Replace from, to, purpose, amount, currency and date. Admin only.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	editor, err := getEditor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("id"), req.update(), editor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction soft-deletes a transaction
// @Summary     Delete a transaction
// @Description Hide a transaction from every read. The row and its history are kept. Admin only.
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	editor, err := getEditor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("id"), editor); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
