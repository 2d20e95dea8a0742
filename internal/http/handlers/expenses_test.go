package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novadent/dental-console/internal/expenses"
)

func seedExpenses(t *testing.T, repo expenses.Repository, reqs ...expenses.CreateExpenseRequest) {
	t.Helper()
	for i := range reqs {
		_, err := repo.Create(context.Background(), &reqs[i])
		require.NoError(t, err)
	}
}

func TestListExpensesFiltered(t *testing.T) {
	repo := expenses.NewInMemoryRepository()
	seedExpenses(t, repo,
		expenses.CreateExpenseRequest{Title: "Gloves", Amount: 40, Category: expenses.CategorySupplies, Date: "2026-03-01"},
		expenses.CreateExpenseRequest{Title: "Autoclave service", Amount: 300, Category: expenses.CategoryEquipment, Date: "2026-03-02"},
	)
	h := NewExpensesHandler(repo, nil)

	rec := httptest.NewRecorder()
	h.ListExpenses(rec, httptest.NewRequest(http.MethodGet, "/api/expenses?category=supplies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp expenseListResponse
	decodeBody(t, rec, &resp)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Gloves", resp.Items[0].Title)
}

func TestListExpensesRejectsUnknownCategory(t *testing.T) {
	h := NewExpensesHandler(expenses.NewInMemoryRepository(), nil)

	rec := httptest.NewRecorder()
	h.ListExpenses(rec, httptest.NewRequest(http.MethodGet, "/api/expenses?category=travel", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateExpense(t *testing.T) {
	repo := expenses.NewInMemoryRepository()
	h := NewExpensesHandler(repo, nil)

	body := `{"title":"Gloves","amount":40,"category":"supplies","date":"2026-03-01"}`
	rec := httptest.NewRecorder()
	h.CreateExpense(rec, httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCreateExpenseValidation(t *testing.T) {
	h := NewExpensesHandler(expenses.NewInMemoryRepository(), nil)

	body := `{"title":"Gloves","amount":-5,"category":"supplies"}`
	rec := httptest.NewRecorder()
	h.CreateExpense(rec, httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
