package debt

import (
	"context"
	"sort"
	"time"
)

type storedDebt struct {
	userId int
	d      Debt
}

type StubDebtRepo struct {
	nextId int
	data   []storedDebt
}

func NewStubDebtRepo() *StubDebtRepo {
	return &StubDebtRepo{}
}

func (s *StubDebtRepo) Store(ctx context.Context, userId int, d Debt) (int, error) {
	s.nextId++
	d.Id = s.nextId
	d.CreatedAt = time.Now()
	s.data = append(s.data, storedDebt{userId: userId, d: d})
	return d.Id, nil
}

func (s *StubDebtRepo) FindAll(ctx context.Context, userId int) ([]Debt, error) {
	var debts []Debt
	for _, stored := range s.data {
		if stored.userId == userId {
			debts = append(debts, stored.d)
		}
	}
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].CreatedAt.After(debts[j].CreatedAt)
	})
	return debts, nil
}

func (s *StubDebtRepo) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	for i, stored := range s.data {
		if stored.userId == userId && stored.d.Uid == uid {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubDebtRepo) Cleanup() {
	s.data = nil
	s.nextId = 0
}
