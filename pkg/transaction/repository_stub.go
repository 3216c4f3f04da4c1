package transaction

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fintrack/fintrack/pkg/category"
)

type stored struct {
	userId int
	t      Transaction
}

// StubRepository is an in-memory Repository for service tests, including the
// budget package's tests which consume the aggregation methods.
type StubRepository struct {
	nextId int
	data   []stored
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) Store(ctx context.Context, userId int, t Transaction) (int, error) {
	s.nextId++
	t.Id = s.nextId
	t.CreatedAt = time.Now()
	s.data = append(s.data, stored{userId, t})
	return t.Id, nil
}

func (s *StubRepository) Find(ctx context.Context, userId int, filter Filter) ([]Transaction, int, error) {
	var matched []Transaction
	for _, row := range s.data {
		if row.userId != userId {
			continue
		}
		t := row.t
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.PaymentMethod != "" && t.PaymentMethod != filter.PaymentMethod {
			continue
		}
		if filter.Search != "" && !matchesSearch(t, filter.Search) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesSearch(t Transaction, search string) bool {
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Title), search) || strings.Contains(strings.ToLower(t.Note), search) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func (s *StubRepository) GetByUid(ctx context.Context, userId int, uid string) (Transaction, error) {
	for _, row := range s.data {
		if row.userId == userId && row.t.Uid == uid {
			return row.t, nil
		}
	}
	return Transaction{}, ErrTransactionNotFound
}

func (s *StubRepository) Update(ctx context.Context, userId int, t Transaction) (bool, error) {
	for i, row := range s.data {
		if row.userId == userId && row.t.Uid == t.Uid {
			t.Id = row.t.Id
			t.CreatedAt = row.t.CreatedAt
			s.data[i].t = t
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	for i, row := range s.data {
		if row.userId == userId && row.t.Uid == uid {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) Recent(ctx context.Context, userId int, limit int) ([]Transaction, error) {
	var owned []Transaction
	for _, row := range s.data {
		if row.userId == userId {
			owned = append(owned, row.t)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (s *StubRepository) Summarize(ctx context.Context, userId int) (Summary, error) {
	var summary Summary
	for _, row := range s.data {
		if row.userId != userId {
			continue
		}
		summary.TotalTransactions++
		if row.t.Amount >= 0 {
			summary.Income += row.t.Amount
		} else {
			summary.Expense += -row.t.Amount
		}
	}
	summary.Net = summary.Income - summary.Expense
	return summary, nil
}

func (s *StubRepository) SumExpensesByCategory(ctx context.Context, userId int, from, to time.Time) (map[category.Category]float64, error) {
	spend := map[category.Category]float64{}
	for _, row := range s.data {
		if row.userId != userId || row.t.Amount >= 0 {
			continue
		}
		if row.t.Date.Before(from) || row.t.Date.After(to) {
			continue
		}
		spend[row.t.Category] += -row.t.Amount
	}
	return spend, nil
}

func (s *StubRepository) SumExpensesForCategory(ctx context.Context, userId int, cat category.Category, from, to time.Time) (float64, error) {
	spend, err := s.SumExpensesByCategory(ctx, userId, from, to)
	if err != nil {
		return 0, err
	}
	return spend[cat], nil
}

func (s *StubRepository) Cleanup() {
	s.data = nil
}
