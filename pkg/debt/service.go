package debt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/pkg/user"
	"github.com/google/uuid"
)

var ErrInvalidDebt = errors.New("invalid debt")

type Service interface {
	Create(ctx context.Context, d Debt) (Debt, error)
	List(ctx context.Context) ([]Debt, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, d Debt) (Debt, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Debt{}, fmt.Errorf("failed to get current user: %w", err)
	}

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return Debt{}, fmt.Errorf("%w: name is required", ErrInvalidDebt)
	}
	if d.Amount < 0 {
		return Debt{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidDebt)
	}
	d.Uid = uuid.New().String()

	id, err := s.repo.Store(ctx, userId, d)
	if err != nil {
		return Debt{}, err
	}
	d.Id = id
	return d, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Debt, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindAll(ctx, userId)
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
		return ErrDebtNotFound
	}
	return nil
}
