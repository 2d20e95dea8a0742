package handlers

import (
	"errors"
	"net/http"

	"github.com/novadent/dental-console/internal/expenses"
	"github.com/novadent/dental-console/pkg/logging"
)

// ExpensesHandler serves the console-local expense book.
type ExpensesHandler struct {
	repo   expenses.Repository
	logger *logging.Logger
}

// NewExpensesHandler creates the handler.
func NewExpensesHandler(repo expenses.Repository, logger *logging.Logger) *ExpensesHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExpensesHandler{repo: repo, logger: logger}
}

type expenseListResponse struct {
	Items []expenses.Expense `json:"items"`
	Total int                `json:"total"`
}

// ListExpenses returns expenses matching the query filters.
// GET /api/expenses?search=&category=
func (h *ExpensesHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if c := q.Get("category"); c != "" && !expenses.ValidCategory(c) {
		writeError(w, http.StatusBadRequest, "unknown category: "+c)
		return
	}

	items, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("expense list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filter := expenses.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	items = filter.Apply(items)

	writeJSON(w, http.StatusOK, expenseListResponse{Items: items, Total: len(items)})
}

// CreateExpense records a new expense.
// POST /api/expenses
func (h *ExpensesHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenses.CreateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if isExpenseValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("expense create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func isExpenseValidationError(err error) bool {
	return errors.Is(err, expenses.ErrTitleRequired) ||
		errors.Is(err, expenses.ErrInvalidAmount) ||
		errors.Is(err, expenses.ErrInvalidCategory)
}
