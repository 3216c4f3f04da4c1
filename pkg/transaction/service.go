package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Service interface {
	Create(ctx context.Context, t Transaction) (Transaction, error)
	List(ctx context.Context, filter Filter) (Page, error)
	Update(ctx context.Context, t Transaction) (Transaction, error)
	Delete(ctx context.Context, uid string) error
	Summarize(ctx context.Context) (Summary, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, t Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}

	t.Title = strings.TrimSpace(t.Title)
	if t.Category == "" {
		t.Category = category.Others
	}
	if t.Date.IsZero() {
		t.Date = s.clock.Now()
	}
	t.Uid = uuid.New().String()

	id, err := s.repo.Store(ctx, userId, t)
	if err != nil {
		return Transaction{}, err
	}
	t.Id = id

	// Alerting is a best-effort side channel: a failing or panicking
	// subscriber must never fail the transaction write.
	if t.Amount < 0 {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreated, event_bus.TransactionCreatedData{
			TransactionUid: t.Uid,
			Category:       string(t.Category),
			Amount:         t.Amount,
			Date:           t.Date,
		}))
		if err != nil {
			log.Warnf("transaction %s stored but post-create handlers failed: %v", t.Uid, err)
		}
	}

	return t, nil
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) (Page, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("failed to get current user: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}

	transactions, total, err := s.repo.Find(ctx, userId, filter)
	if err != nil {
		return Page{}, err
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	return Page{
		Transactions: transactions,
		CurrentPage:  filter.Page,
		TotalPages:   totalPages,
		HasMore:      filter.Page*filter.Limit < total,
	}, nil
}

func (s *ServiceImpl) Update(ctx context.Context, t Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, t)
	if err != nil {
		return Transaction{}, err
	}
	if !updated {
		log.Warnf("transaction not updated, probably because it does not exist (%s) or the user (%d) is not the owner", t.Uid, userId)
		return Transaction{}, ErrTransactionNotFound
	}
	return s.repo.GetByUid(ctx, userId, t.Uid)
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
		log.Warnf("transaction not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", uid, userId)
		return ErrTransactionNotFound
	}
	return nil
}

func (s *ServiceImpl) Summarize(ctx context.Context) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Summarize(ctx, userId)
}
