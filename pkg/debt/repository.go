package debt

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrDebtNotFound = errors.New("debt not found")

type Repository interface {
	Store(ctx context.Context, userId int, d Debt) (int, error)
	FindAll(ctx context.Context, userId int) ([]Debt, error)
	Delete(ctx context.Context, userId int, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, d Debt) (int, error) {
	query := `INSERT INTO debt (uid, user_id, name, amount) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query, d.Uid, userId, d.Name, d.Amount).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert debt: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) FindAll(ctx context.Context, userId int) ([]Debt, error) {
	query := `SELECT id, uid, name, amount, created_at FROM debt
              WHERE user_id = $1
              ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query debts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var debts []Debt
	for rows.Next() {
		var d Debt
		if err := rows.Scan(&d.Id, &d.Uid, &d.Name, &d.Amount, &d.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan debt: %w", err)
			log.Error(err)
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	query := `DELETE FROM debt WHERE user_id = $1 AND uid = $2`

	tag, err := r.db.Exec(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete debt: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
