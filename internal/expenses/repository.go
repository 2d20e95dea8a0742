package expenses

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for expense storage.
type Repository interface {
	Create(ctx context.Context, req *CreateExpenseRequest) (*Expense, error)
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context) ([]Expense, error)
}

// InMemoryRepository keeps expenses in process memory.
type InMemoryRepository struct {
	mu       sync.RWMutex
	expenses map[string]*Expense
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		expenses: make(map[string]*Expense),
	}
}

// Create validates and stores a new expense.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	expense := &Expense{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(req.Title),
		Amount:    req.Amount,
		Category:  strings.ToLower(strings.TrimSpace(req.Category)),
		Date:      req.Date,
		Note:      req.Note,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.expenses[expense.ID] = expense
	r.mu.Unlock()

	return expense, nil
}

// GetByID retrieves an expense by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	expense, ok := r.expenses[id]
	if !ok {
		return nil, ErrExpenseNotFound
	}
	cpy := *expense
	return &cpy, nil
}

// List returns every expense, newest date first.
func (r *InMemoryRepository) List(ctx context.Context) ([]Expense, error) {
	r.mu.RLock()
	out := make([]Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Date > out[j].Date
	})
	return out, nil
}
