package budget

import (
	"context"
	"sort"
	"time"
)

type storedAlert struct {
	userId int
	alert  BudgetAlert
}

type StubAlertRepo struct {
	nextId int
	data   []storedAlert
}

func NewStubAlertRepo() *StubAlertRepo {
	return &StubAlertRepo{}
}

func (s *StubAlertRepo) InsertIfAbsent(ctx context.Context, userId int, alert BudgetAlert) (BudgetAlert, bool, error) {
	for _, stored := range s.data {
		existing := stored.alert
		if stored.userId == userId &&
			existing.Category == alert.Category &&
			existing.Month == alert.Month &&
			existing.Year == alert.Year &&
			existing.Type == alert.Type {
			return BudgetAlert{}, false, nil
		}
	}
	s.nextId++
	alert.Id = s.nextId
	alert.IsRead = false
	alert.CreatedAt = time.Now()
	s.data = append(s.data, storedAlert{userId: userId, alert: alert})
	return alert, true, nil
}

func (s *StubAlertRepo) FindForMonth(ctx context.Context, userId int, month string, year int) ([]BudgetAlert, error) {
	var alerts []BudgetAlert
	for _, stored := range s.data {
		if stored.userId == userId && stored.alert.Month == month && stored.alert.Year == year {
			alerts = append(alerts, stored.alert)
		}
	}
	sortNewestFirst(alerts)
	return alerts, nil
}

func (s *StubAlertRepo) Find(ctx context.Context, userId int, isRead *bool, limit int) ([]BudgetAlert, error) {
	var alerts []BudgetAlert
	for _, stored := range s.data {
		if stored.userId != userId {
			continue
		}
		if isRead != nil && stored.alert.IsRead != *isRead {
			continue
		}
		alerts = append(alerts, stored.alert)
	}
	sortNewestFirst(alerts)
	if len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

func (s *StubAlertRepo) MarkRead(ctx context.Context, userId int, uid string) (BudgetAlert, error) {
	for i, stored := range s.data {
		if stored.userId == userId && stored.alert.Uid == uid {
			s.data[i].alert.IsRead = true
			return s.data[i].alert, nil
		}
	}
	return BudgetAlert{}, ErrAlertNotFound
}

func (s *StubAlertRepo) Cleanup() {
	s.data = nil
	s.nextId = 0
}

func sortNewestFirst(alerts []BudgetAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}
