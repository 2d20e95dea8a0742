package expenses

import (
	"strings"
	"time"
)

// Categories an expense can be filed under.
const (
	CategorySupplies  = "supplies"
	CategoryEquipment = "equipment"
	CategoryUtilities = "utilities"
	CategorySalaries  = "salaries"
	CategoryOther     = "other"
)

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c string) bool {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case CategorySupplies, CategoryEquipment, CategoryUtilities, CategorySalaries, CategoryOther:
		return true
	default:
		return false
	}
}

// Expense is one office expense record. These live in the console only;
// the upstream API does not own them.
type Expense struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateExpenseRequest is the payload for recording an expense.
type CreateExpenseRequest struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Note     string  `json:"note,omitempty"`
}

// Validate checks the request before it is stored.
func (r *CreateExpenseRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !ValidCategory(r.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// Filter selects expenses for the list view. Zero values mean "no
// constraint"; set constraints combine as a logical AND.
type Filter struct {
	Search   string
	Category string
}

// Apply retains the expenses matching every set constraint: category
// equality and a case-insensitive substring search over title and
// category. The input is never mutated.
func (f Filter) Apply(items []Expense) []Expense {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	out := make([]Expense, 0, len(items))
	for _, e := range items {
		if category != "" && strings.ToLower(e.Category) != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Category), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Stats are the expense headline numbers.
type Stats struct {
	Total       float64 `json:"total"`
	MonthToDate float64 `json:"monthToDate"`
	Count       int     `json:"count"`
}

// BuildStats aggregates expenses as of now.
func BuildStats(items []Expense, now time.Time) Stats {
	stats := Stats{Count: len(items)}
	month := now.Format("2006-01")
	for _, e := range items {
		stats.Total += e.Amount
		if strings.HasPrefix(e.Date, month) {
			stats.MonthToDate += e.Amount
		}
	}
	return stats
}
