package reminder

import (
	"context"
	"sort"
	"time"
)

type storedReminder struct {
	userId int
	rem    Reminder
}

type StubReminderRepo struct {
	nextId int
	data   []storedReminder
}

func NewStubReminderRepo() *StubReminderRepo {
	return &StubReminderRepo{}
}

func (s *StubReminderRepo) Store(ctx context.Context, userId int, rem Reminder) (int, error) {
	s.nextId++
	rem.Id = s.nextId
	rem.CreatedAt = time.Now()
	s.data = append(s.data, storedReminder{userId: userId, rem: rem})
	return rem.Id, nil
}

func (s *StubReminderRepo) FindAll(ctx context.Context, userId int) ([]Reminder, error) {
	var reminders []Reminder
	for _, stored := range s.data {
		if stored.userId == userId {
			reminders = append(reminders, stored.rem)
		}
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].Date.Before(reminders[j].Date)
	})
	return reminders, nil
}

func (s *StubReminderRepo) GetByUid(ctx context.Context, userId int, uid string) (Reminder, error) {
	for _, stored := range s.data {
		if stored.userId == userId && stored.rem.Uid == uid {
			return stored.rem, nil
		}
	}
	return Reminder{}, ErrReminderNotFound
}

func (s *StubReminderRepo) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	for i, stored := range s.data {
		if stored.userId == userId && stored.rem.Uid == uid {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubReminderRepo) Cleanup() {
	s.data = nil
	s.nextId = 0
}
