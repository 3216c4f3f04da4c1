package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/google/uuid"
)

var ErrInvalidReminder = errors.New("invalid reminder")

type Service interface {
	Create(ctx context.Context, rem Reminder) (Reminder, error)
	List(ctx context.Context) ([]Reminder, error)
	Get(ctx context.Context, uid string) (Reminder, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, rem Reminder) (Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Reminder{}, fmt.Errorf("failed to get current user: %w", err)
	}

	rem.Title = strings.TrimSpace(rem.Title)
	if rem.Title == "" {
		return Reminder{}, fmt.Errorf("%w: title is required", ErrInvalidReminder)
	}
	if rem.Date.IsZero() {
		return Reminder{}, fmt.Errorf("%w: date is required", ErrInvalidReminder)
	}
	if rem.Category == "" {
		rem.Category = category.Others
	}
	rem.Uid = uuid.New().String()

	id, err := s.repo.Store(ctx, userId, rem)
	if err != nil {
		return Reminder{}, err
	}
	rem.Id = id
	return rem, nil
}

// List returns the user's reminders ordered by due date, soonest first.
func (s *ServiceImpl) List(ctx context.Context) ([]Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindAll(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Reminder{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByUid(ctx, userId, uid)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReminderNotFound
	}
	return nil
}
